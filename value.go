package blend

import "fmt"

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindBytes
	KindString
	KindObject
	KindRef
	KindRefList
	KindList
	KindUnresolved
)

// Value is a field's decoded value: exactly one of the typed accessors below
// is meaningful, selected by Kind. A field decodes to exactly one of: an
// integer, a floating-point scalar, a NUL-terminated string, a nested
// materialized object, a reference to another materialized object, a list
// of references, a list of values (array fields), an unresolved address,
// or null. KindBytes exists as a variant, but the decoder produces no
// byte-array values.
type Value struct {
	Kind ValueKind

	Int            int64
	Float          float64
	Bytes          []byte
	Str            string
	Obj            *Object
	Ref            *Object
	Refs           []*Object
	List           []Value
	UnresolvedAddr uint64
}

func nullValue() Value                { return Value{Kind: KindNull} }
func intValue(v int64) Value          { return Value{Kind: KindInt, Int: v} }
func floatValue(v float64) Value      { return Value{Kind: KindFloat, Float: v} }
func bytesValue(v []byte) Value       { return Value{Kind: KindBytes, Bytes: v} }
func stringValue(v string) Value      { return Value{Kind: KindString, Str: v} }
func objectValue(o *Object) Value     { return Value{Kind: KindObject, Obj: o} }
func refValue(o *Object) Value        { return Value{Kind: KindRef, Ref: o} }
func refListValue(o []*Object) Value  { return Value{Kind: KindRefList, Refs: o} }
func listValue(v []Value) Value       { return Value{Kind: KindList, List: v} }
func unresolvedValue(addr uint64) Value {
	return Value{Kind: KindUnresolved, UnresolvedAddr: addr}
}

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "<null>"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case KindString:
		return v.Str
	case KindObject:
		if v.Obj == nil {
			return "<object:nil>"
		}
		return "<object:" + v.Obj.TypeName + ">"
	case KindRef:
		if v.Ref == nil {
			return "<ref:nil>"
		}
		return "<ref:" + v.Ref.TypeName + ">"
	case KindRefList:
		return fmt.Sprintf("<refs:%d>", len(v.Refs))
	case KindList:
		return fmt.Sprintf("<list:%d>", len(v.List))
	case KindUnresolved:
		return fmt.Sprintf("<unresolved:0x%x>", v.UnresolvedAddr)
	default:
		return "<unknown>"
	}
}
