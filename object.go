package blend

// Object is a materialized record whose shape is given by one schema
// structure definition: a dynamically-typed field-name-to-value map plus
// the structure's own type name.
type Object struct {
	// TypeName is Schema.Types[structDef.TypeIndex].
	TypeName string

	// OldAddress is the writer-process memory address this instance was
	// read from (shared by every instance allocated from the same block
	// when Count > 1; only the block's base address is stored on disk,
	// individual instance addresses are not recoverable beyond block
	// identity).
	OldAddress uint64

	fields map[string]Value
	order  []string // field insertion order, for stable iteration/rendering
}

func newObject(typeName string, oldAddress uint64) *Object {
	return &Object{
		TypeName:   typeName,
		OldAddress: oldAddress,
		fields:     make(map[string]Value),
	}
}

// Get returns the value stored under a cleaned field name (pointer
// prefixes and array suffixes stripped), or the null variant if absent.
func (o *Object) Get(name string) Value {
	if v, ok := o.fields[name]; ok {
		return v
	}
	return nullValue()
}

// Fields returns field names in schema declaration order.
func (o *Object) Fields() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// set assigns a field's value under its cleaned name. If collision
// detection has not been requested, later writes for the same cleaned name
// simply overwrite earlier ones in schema declaration order. Returns
// whether name was already set.
func (o *Object) set(name string, v Value) (collided bool) {
	if _, exists := o.fields[name]; exists {
		o.fields[name] = v
		return true
	}
	o.fields[name] = v
	o.order = append(o.order, name)
	return false
}
