package apierrors

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Field is one node in a tree of field validation failures. A leaf carries
// Reasons; a group carries nested Fields. A node should not carry both.
type Field struct {
	Name    string
	Reasons []string
	Fields  Fields
}

// Fields is an ordered tree of field validation failures. Slice order is
// the traversal order, so flattening the same tree always yields the same
// sequence of invalid params.
type Fields []Field

// FieldsFromMap converts a nested map of field names to reasons into a
// Fields tree. Values may be a string, []string, []any of strings or a
// nested map[string]any. Keys are sorted so the resulting order is
// deterministic regardless of map iteration order.
func FieldsFromMap(m map[string]any) (Fields, error) {
	keys := maps.Keys(m)
	slices.Sort(keys)

	fields := make(Fields, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			fields = append(fields, Field{Name: k, Reasons: []string{v}})
		case []string:
			fields = append(fields, Field{Name: k, Reasons: v})
		case []any:
			reasons := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("field %q: unexpected reason type %T", k, item)
				}
				reasons = append(reasons, s)
			}
			fields = append(fields, Field{Name: k, Reasons: reasons})
		case map[string]any:
			nested, err := FieldsFromMap(v)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: k, Fields: nested})
		case Fields:
			fields = append(fields, Field{Name: k, Fields: v})
		default:
			return nil, fmt.Errorf("field %q: unexpected value type %T", k, v)
		}
	}
	return fields, nil
}

// Flatten walks the tree depth-first and produces the flat invalid params
// list, joining ancestor names with sep. Reasons under the non-field key
// (or the legacy "__all__" key) at the top level are routed to the detail
// list instead. Empty results are nil, never empty slices.
func (f Fields) Flatten(sep, nonFieldKey string) (params []InvalidParam, detail []string) {
	f.flatten("", sep, nonFieldKey, &params, &detail)
	return params, detail
}

func (f Fields) flatten(prefix, sep, nonFieldKey string, params *[]InvalidParam, detail *[]string) {
	for _, field := range f {
		name := field.Name
		if prefix != "" && sep != "" {
			name = prefix + sep + field.Name
		}
		if len(field.Fields) > 0 {
			field.Fields.flatten(name, sep, nonFieldKey, params, detail)
			continue
		}
		if name == nonFieldKey || name == legacyNonFieldKey {
			*detail = append(*detail, field.Reasons...)
			continue
		}
		*params = append(*params, InvalidParam{Name: name, Reason: field.Reasons})
	}
}

// legacyNonFieldKey is always treated as a non-field error marker, in
// addition to the configured key.
const legacyNonFieldKey = "__all__"
