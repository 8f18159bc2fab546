package blend

import (
	"encoding/binary"
	"io"
	"log"
)

// materializer runs the two-pass object construction: pass 1 allocates
// empty typed instances keyed by original address, pass 2 fills fields and
// resolves pointers against the address index built in pass 1.
type materializer struct {
	schema    *Schema
	order     binary.ByteOrder
	ptrWidth  int
	addrIndex map[uint64]*block
	fields    *schemaFieldCache
	logger    *log.Logger

	rejectCollisions bool
	warnedTypes      map[string]bool
}

func newMaterializer(schema *Schema, order binary.ByteOrder, ptrWidth int, logger *log.Logger, rejectCollisions bool) *materializer {
	return &materializer{
		schema:           schema,
		order:            order,
		ptrWidth:         ptrWidth,
		addrIndex:        make(map[uint64]*block),
		fields:           newSchemaFieldCache(),
		logger:           logger,
		rejectCollisions: rejectCollisions,
		warnedTypes:      make(map[string]bool),
	}
}

// run executes pass 1 (allocate) then pass 2 (fill) over every non-schema
// block, and returns the flat object list in block order, object order
// within block.
func (m *materializer) run(r io.ReaderAt, blocks []*block) ([]*Object, error) {
	// Pass 1: allocate.
	for _, b := range blocks {
		if b.Code == "DNA1" || b.Count == 0 {
			continue
		}
		if int(b.SDNAIndex) >= len(m.schema.Structures) {
			return nil, &MalformedSchemaError{Reason: "block references out-of-range SDNA index"}
		}
		def := m.schema.Structures[b.SDNAIndex]
		typeName := m.schema.Types[def.TypeIndex]

		b.objects = make([]*Object, b.Count)
		for i := range b.objects {
			b.objects[i] = newObject(typeName, b.OldAddress)
		}
		// last-write-wins on address collision: a later block claiming an
		// already-indexed address silently replaces the earlier one.
		m.addrIndex[b.OldAddress] = b
	}

	// Pass 2: fill.
	for _, b := range blocks {
		if b.Code == "DNA1" || b.Count == 0 {
			continue
		}
		payload, err := readPayload(r, b)
		if err != nil {
			return nil, err
		}
		def := m.schema.Structures[b.SDNAIndex]

		br := newByteReader(payload, m.order, m.ptrWidth)
		for i := 0; i < int(b.Count); i++ {
			if err := m.decodeObjectFields(br, b.objects[i], def); err != nil {
				return nil, err
			}
		}
		// trailing bytes beyond the last field of the last object are
		// residual data and are discarded silently.
	}

	var all []*Object
	for _, b := range blocks {
		if b.Code == "DNA1" {
			continue
		}
		all = append(all, b.objects...)
	}
	return all, nil
}

// decodeObjectFields fills every field of obj from br, in schema declaration
// order, recursively decoding nested structures against the same cursor.
func (m *materializer) decodeObjectFields(br *byteReader, obj *Object, def StructureDef) error {
	for _, f := range def.Fields {
		rawName := m.schema.Names[f.NameIndex]
		fd := m.fields.get(rawName)

		v, err := m.decodeField(fd, f.TypeIndex, br)
		if err != nil {
			return err
		}

		collided := obj.set(fd.cleanName, v)
		if collided && m.rejectCollisions {
			return ErrSchemaFieldCollision
		}
	}
	return nil
}

// decodeField is the per-field decoder: it dispatches in order of arrays,
// pointers, bare void, primitives, then compound (or unknown) types.
func (m *materializer) decodeField(fd fieldDescriptor, typeIndex int, br *byteReader) (Value, error) {
	if len(fd.dims) > 0 {
		return m.decodeArray(fd, typeIndex, br, 0)
	}

	if fd.isPointer {
		return m.decodePointer(br)
	}

	typeName := m.schema.Types[typeIndex]

	switch typeName {
	case "void":
		// function-pointer field in the writer: no payload bytes emitted.
		return nullValue(), nil
	case "char":
		b, err := br.take(1)
		if err != nil {
			return Value{}, err
		}
		return stringValue(string(b)), nil
	case "float":
		f, err := br.float32()
		if err != nil {
			return Value{}, err
		}
		return floatValue(float64(f)), nil
	case "double":
		f, err := br.float64()
		if err != nil {
			return Value{}, err
		}
		return floatValue(f), nil
	case "int", "short", "long", "int64_t", "uint64_t":
		size := int(m.schema.TypeSizes[typeIndex])
		v, err := br.uint(size)
		if err != nil {
			return Value{}, err
		}
		return intValue(int64(v)), nil
	}

	// Compound: recurse into a nested structure if the type is defined;
	// otherwise this is an unhandled primitive type (e.g. "uchar") or a
	// genuinely unknown one. Either way, advance by its declared size and
	// yield null, logging the miss once per type name.
	if idx, ok := m.schema.StructureIndexOf(typeName); ok {
		nested := newObject(typeName, 0)
		if err := m.decodeObjectFields(br, nested, m.schema.Structures[idx]); err != nil {
			return Value{}, err
		}
		return objectValue(nested), nil
	}

	if !m.warnedTypes[typeName] {
		m.warnedTypes[typeName] = true
		if m.logger != nil {
			m.logger.Printf("blend: field of unknown type %q, skipping", typeName)
		}
	}
	br.skip(int(m.schema.TypeSizes[typeIndex]))
	return nullValue(), nil
}

// decodeArray recursively decodes fd.dims[depth:], wrapping results in
// nested lists. char[N] at the innermost dimension decodes as a single
// NUL-terminated string instead of a list of one-byte strings.
func (m *materializer) decodeArray(fd fieldDescriptor, typeIndex int, br *byteReader, depth int) (Value, error) {
	if depth == len(fd.dims) {
		stripped := fieldDescriptor{isPointer: fd.isPointer, cleanName: fd.cleanName}
		return m.decodeField(stripped, typeIndex, br)
	}

	dim := fd.dims[depth]
	typeName := m.schema.Types[typeIndex]

	if depth == len(fd.dims)-1 && typeName == "char" && !fd.isPointer {
		s, err := br.cstring(dim)
		if err != nil {
			return Value{}, err
		}
		return stringValue(s), nil
	}

	elems := make([]Value, dim)
	for i := 0; i < dim; i++ {
		v, err := m.decodeArray(fd, typeIndex, br, depth+1)
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return listValue(elems), nil
}

// decodePointer reads a pointer-width address and resolves it against the
// address index built in pass 1.
func (m *materializer) decodePointer(br *byteReader) (Value, error) {
	p, err := br.pointer()
	if err != nil {
		return Value{}, err
	}
	if p == 0 {
		return nullValue(), nil
	}
	if b, ok := m.addrIndex[p]; ok {
		if len(b.objects) > 1 {
			return refListValue(b.objects), nil
		}
		if len(b.objects) == 1 {
			return refValue(b.objects[0]), nil
		}
	}
	return unresolvedValue(p), nil
}
