package graphdef

import "fmt"

// DataType is a framework type tag carried in "type"-kinded attributes.
// Values mirror the framework's numbering so containers written by other
// tooling stay readable.
type DataType int32

const (
	DTInvalid DataType = 0
	DTFloat   DataType = 1
	DTDouble  DataType = 2
	DTInt32   DataType = 3
	DTUint8   DataType = 4
	DTInt16   DataType = 5
	DTInt8    DataType = 6
	DTString  DataType = 7
	DTInt64   DataType = 9
	DTBool    DataType = 10
)

var dataTypeNames = map[DataType]string{
	DTInvalid: "DT_INVALID",
	DTFloat:   "DT_FLOAT",
	DTDouble:  "DT_DOUBLE",
	DTInt32:   "DT_INT32",
	DTUint8:   "DT_UINT8",
	DTInt16:   "DT_INT16",
	DTInt8:    "DT_INT8",
	DTString:  "DT_STRING",
	DTInt64:   "DT_INT64",
	DTBool:    "DT_BOOL",
}

// String returns the canonical "DT_*" spelling of the type tag.
func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DT_UNKNOWN(%d)", int32(d))
}

// ParseDataType maps a canonical "DT_*" spelling back to its tag.
func ParseDataType(s string) (DataType, error) {
	for d, name := range dataTypeNames {
		if name == s {
			return d, nil
		}
	}
	return DTInvalid, fmt.Errorf("unknown data type %q", s)
}

// AttrKind discriminates the variants of AttrValue.
type AttrKind int

const (
	AttrInvalid AttrKind = iota
	AttrInt
	AttrFloat
	AttrBool
	AttrBytes
	AttrType
	AttrList
)

// AttrValue is the tagged union stored in a node's attribute bag: a numeric
// scalar, a boolean, an opaque byte string, a framework type tag, or an
// ordered list of any of these. Exactly the field selected by Kind is
// meaningful; the rest stay zero.
type AttrValue struct {
	Kind  AttrKind
	Int   int64
	Float float64
	Bool  bool
	Bytes []byte
	Type  DataType
	List  []*AttrValue
}

// IntAttr wraps an integer scalar.
func IntAttr(v int64) *AttrValue { return &AttrValue{Kind: AttrInt, Int: v} }

// FloatAttr wraps a floating-point scalar.
func FloatAttr(v float64) *AttrValue { return &AttrValue{Kind: AttrFloat, Float: v} }

// BoolAttr wraps a boolean.
func BoolAttr(v bool) *AttrValue { return &AttrValue{Kind: AttrBool, Bool: v} }

// BytesAttr wraps an opaque byte string.
func BytesAttr(v []byte) *AttrValue {
	return &AttrValue{Kind: AttrBytes, Bytes: append([]byte(nil), v...)}
}

// StringAttr wraps a string as an opaque byte string. Operation-name tags
// (e.g. the entries of a fused_ops list) are stored this way.
func StringAttr(v string) *AttrValue { return &AttrValue{Kind: AttrBytes, Bytes: []byte(v)} }

// TypeAttr wraps a framework type tag.
func TypeAttr(v DataType) *AttrValue { return &AttrValue{Kind: AttrType, Type: v} }

// ListAttr wraps an ordered list of values. The elements are stored by
// reference.
func ListAttr(elems ...*AttrValue) *AttrValue {
	return &AttrValue{Kind: AttrList, List: elems}
}

// Clone returns a deep copy of the value, including list elements and byte
// strings.
func (a *AttrValue) Clone() *AttrValue {
	if a == nil {
		return nil
	}
	out := &AttrValue{
		Kind:  a.Kind,
		Int:   a.Int,
		Float: a.Float,
		Bool:  a.Bool,
		Type:  a.Type,
	}
	if a.Bytes != nil {
		out.Bytes = append([]byte(nil), a.Bytes...)
	}
	if a.List != nil {
		out.List = make([]*AttrValue, 0, len(a.List))
		for _, e := range a.List {
			out.List = append(out.List, e.Clone())
		}
	}
	return out
}
