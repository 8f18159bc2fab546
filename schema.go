package blend

import (
	"bytes"
	"encoding/binary"
)

// StructureField is one (field-type, field-name) pair inside a structure
// definition, as indices into Schema.Types and Schema.Names.
type StructureField struct {
	TypeIndex int
	NameIndex int
}

// StructureDef is one schema-defined structure: its own name is
// Schema.Types[TypeIndex], and its fields are listed in declaration order.
type StructureDef struct {
	TypeIndex int
	Fields    []StructureField
}

// Schema is the self-describing layout table embedded in the file under
// block code DNA1 (SDNA): name pool, type pool, per-type sizes and the
// structure-definition table.
type Schema struct {
	Names      []string
	Types      []string
	TypeSizes  []uint16
	Structures []StructureDef

	byTypeName map[string]int
}

// StructureIndexOf returns the index into Structures whose own name
// (Types[s.TypeIndex]) equals typeName, and whether it was found. Type
// names are unique in a well-formed schema, so the lookup is unambiguous.
func (s *Schema) StructureIndexOf(typeName string) (int, bool) {
	idx, ok := s.byTypeName[typeName]
	return idx, ok
}

// decodeSchema parses the payload of the single DNA1 block. Every
// multi-byte integer in it uses order, the byte order carried by the file
// header, even though the integer widths themselves (4-byte counts,
// 2-byte type/field indices) are fixed regardless of pointer width.
func decodeSchema(payload []byte, order binary.ByteOrder) (*Schema, error) {
	if len(payload) < 4 || string(payload[:4]) != "SDNA" {
		return nil, &MalformedSchemaError{Tag: "SDNA", Reason: "missing SDNA identifier"}
	}
	pos := 4

	pos, err := expectTag(payload, pos, "NAME")
	if err != nil {
		return nil, err
	}
	nameCount, pos, err := readCount(payload, pos, "NAME", order)
	if err != nil {
		return nil, err
	}
	names, pos, err := readStrings(payload, pos, nameCount)
	if err != nil {
		return nil, err
	}

	pos, err = scanTag(payload, pos, "TYPE")
	if err != nil {
		return nil, err
	}
	typeCount, pos, err := readCount(payload, pos, "TYPE", order)
	if err != nil {
		return nil, err
	}
	types, pos, err := readStrings(payload, pos, typeCount)
	if err != nil {
		return nil, err
	}

	pos, err = scanTag(payload, pos, "TLEN")
	if err != nil {
		return nil, err
	}
	typeSizes := make([]uint16, typeCount)
	for i := 0; i < typeCount; i++ {
		v, p, err := readU16(payload, pos, "TLEN", order)
		if err != nil {
			return nil, err
		}
		typeSizes[i] = v
		pos = p
	}

	pos, err = scanTag(payload, pos, "STRC")
	if err != nil {
		return nil, err
	}
	structCount, pos, err := readCount(payload, pos, "STRC", order)
	if err != nil {
		return nil, err
	}

	structures := make([]StructureDef, structCount)
	for i := 0; i < structCount; i++ {
		typeIdx, p, err := readU16(payload, pos, "STRC", order)
		if err != nil {
			return nil, err
		}
		pos = p
		fieldCount, p, err := readU16(payload, pos, "STRC", order)
		if err != nil {
			return nil, err
		}
		pos = p

		if int(typeIdx) >= len(types) {
			return nil, &MalformedSchemaError{Tag: "STRC", Reason: "structure type index out of range"}
		}

		fields := make([]StructureField, fieldCount)
		for j := range fields {
			fTy, p, err := readU16(payload, pos, "STRC", order)
			if err != nil {
				return nil, err
			}
			pos = p
			fNa, p, err := readU16(payload, pos, "STRC", order)
			if err != nil {
				return nil, err
			}
			pos = p

			if int(fTy) >= len(types) {
				return nil, &MalformedSchemaError{Tag: "STRC", Reason: "field type index out of range"}
			}
			if int(fNa) >= len(names) {
				return nil, &MalformedSchemaError{Tag: "STRC", Reason: "field name index out of range"}
			}
			fields[j] = StructureField{TypeIndex: int(fTy), NameIndex: int(fNa)}
		}

		structures[i] = StructureDef{TypeIndex: int(typeIdx), Fields: fields}
	}

	s := &Schema{
		Names:      names,
		Types:      types,
		TypeSizes:  typeSizes,
		Structures: structures,
		byTypeName: make(map[string]int, len(structures)),
	}
	for i, def := range structures {
		s.byTypeName[types[def.TypeIndex]] = i
	}

	return s, nil
}

func expectTag(buf []byte, pos int, tag string) (int, error) {
	if pos+4 > len(buf) || string(buf[pos:pos+4]) != tag {
		return 0, &MalformedSchemaError{Tag: tag, Reason: "expected tag not found at current offset"}
	}
	return pos + 4, nil
}

// scanTag advances from pos to the first occurrence of tag and resumes
// immediately after it, tolerating writer-inserted alignment padding.
func scanTag(buf []byte, pos int, tag string) (int, error) {
	idx := bytes.Index(buf[pos:], []byte(tag))
	if idx < 0 {
		return 0, &MalformedSchemaError{Tag: tag, Reason: "tag not found in remaining schema payload"}
	}
	return pos + idx + 4, nil
}

func readCount(buf []byte, pos int, tag string, order binary.ByteOrder) (int, int, error) {
	if pos+4 > len(buf) {
		return 0, 0, &MalformedSchemaError{Tag: tag, Reason: "count field runs past end of buffer"}
	}
	n := order.Uint32(buf[pos : pos+4])
	return int(n), pos + 4, nil
}

func readU16(buf []byte, pos int, tag string, order binary.ByteOrder) (uint16, int, error) {
	if pos+2 > len(buf) {
		return 0, 0, &MalformedSchemaError{Tag: tag, Reason: "value runs past end of buffer"}
	}
	return order.Uint16(buf[pos : pos+2]), pos + 2, nil
}

func readStrings(buf []byte, pos int, n int) ([]string, int, error) {
	out := make([]string, 0, n)
	for len(out) < n {
		if pos >= len(buf) {
			return nil, 0, &MalformedSchemaError{Reason: "name/type pool runs past end of buffer"}
		}
		end := bytes.IndexByte(buf[pos:], 0)
		if end < 0 {
			return nil, 0, &MalformedSchemaError{Reason: "unterminated string in name/type pool"}
		}
		out = append(out, string(buf[pos:pos+end]))
		pos += end + 1
	}
	return out, pos, nil
}
