package blend

// AllObjects returns every materialized object, in block order, object
// order within block. Callers should treat the returned slice as read-only.
func (f *File) AllObjects() []*Object {
	return f.objects
}

// ObjectsOfType returns the subset of AllObjects() whose TypeName equals
// name, preserving relative order.
func (f *File) ObjectsOfType(name string) []*Object {
	var out []*Object
	for _, o := range f.objects {
		if o.TypeName == name {
			out = append(out, o)
		}
	}
	return out
}
