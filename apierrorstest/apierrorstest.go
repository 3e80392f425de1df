// Package apierrorstest provides testing utilities for code using the
// apierrors formatter. It is based on the standard library's
// httptest.ResponseRecorder, so tests can drive the formatter without a
// real router.
package apierrorstest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/apierrors/apierrors"
)

// Recorder is an in-memory apierrors.Context capturing everything the
// formatter writes.
type Recorder struct {
	// Request headers presented to the formatter, e.g. Accept.
	RequestHeader http.Header

	rec *httptest.ResponseRecorder
}

var _ apierrors.Context = &Recorder{}

// NewRecorder creates a Recorder. The optional accept argument sets the
// request's Accept header.
func NewRecorder(accept ...string) *Recorder {
	r := &Recorder{
		RequestHeader: http.Header{},
		rec:           httptest.NewRecorder(),
	}
	if len(accept) > 0 {
		r.RequestHeader.Set("Accept", accept[0])
	}
	return r
}

func (r *Recorder) Header(name string) string {
	return r.RequestHeader.Get(name)
}

func (r *Recorder) SetHeader(name, value string) {
	r.rec.Header().Set(name, value)
}

func (r *Recorder) SetStatus(code int) {
	r.rec.WriteHeader(code)
}

func (r *Recorder) BodyWriter() io.Writer {
	return r.rec
}

// Result returns the recorded response.
func (r *Recorder) Result() *http.Response {
	return r.rec.Result()
}

// Status returns the recorded status code.
func (r *Recorder) Status() int {
	return r.rec.Code
}

// ResponseHeader returns a recorded response header value.
func (r *Recorder) ResponseHeader(name string) string {
	return r.rec.Header().Get(name)
}

// Body returns the raw recorded body.
func (r *Recorder) Body() []byte {
	return r.rec.Body.Bytes()
}

// BodyJSON decodes the recorded body as JSON into a generic map, failing
// the test on malformed output.
func (r *Recorder) BodyJSON(t interface{ Fatalf(string, ...any) }) map[string]any {
	var out map[string]any
	if err := json.Unmarshal(r.rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("apierrorstest: decoding response body %q: %v", r.rec.Body.String(), err)
	}
	return out
}
