// Package cbor adds CBOR error responses. Importing it registers the
// format with apierrors.DefaultFormats, after which clients sending
// `Accept: application/cbor` receive `application/problem+cbor` bodies.
package cbor

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/apierrors/apierrors"
)

var encMode, _ = cbor.EncOptions{
	Sort:          cbor.SortCanonical,
	ShortestFloat: cbor.ShortestFloat16,
	NaNConvert:    cbor.NaNConvert7e00,
	InfConvert:    cbor.InfConvertFloat16,
	IndefLength:   cbor.IndefLengthForbidden,
}.EncMode()

// Format is the CBOR formatter registered by this package. It can also be
// added to apierrors.DefaultFormats under additional content types by hand.
var Format = apierrors.Format{
	Marshal: func(w io.Writer, v any) error {
		return encMode.NewEncoder(w).Encode(v)
	},
}

func init() {
	apierrors.DefaultFormats["application/cbor"] = Format
}
