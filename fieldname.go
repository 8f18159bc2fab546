package blend

import "strings"

// fieldDescriptor captures what a raw schema field name encodes beyond its
// cleaned identifier: pointer indirection and array dimensions. Parsed once
// per schema field and cached, since the same field is redecoded for every
// object instance of its structure.
type fieldDescriptor struct {
	raw       string
	isPointer bool
	dims      []int // outer-to-inner array dimensions, empty if scalar
	cleanName string
}

// parseFieldName derives a fieldDescriptor from a raw schema field name such
// as "*id", "name[64]", "mat[4][4]" or "(*draw)()".
func parseFieldName(raw string) fieldDescriptor {
	d := fieldDescriptor{raw: raw}

	name := raw
	if strings.HasPrefix(name, "(*") {
		// function pointer field, e.g. "(*draw)()". The name itself does not
		// begin with '*', so it does not take the pointer branch below: type
		// void, no '*' prefix, consumes zero payload bytes.
		inner := strings.TrimPrefix(name, "(*")
		if i := strings.Index(inner, ")"); i >= 0 {
			inner = inner[:i]
		}
		d.cleanName = inner
		return d
	}

	for strings.HasPrefix(name, "*") {
		d.isPointer = true
		name = name[1:]
	}

	base := name
	for {
		open := strings.IndexByte(base, '[')
		if open < 0 {
			break
		}
		close := strings.IndexByte(base[open:], ']')
		if close < 0 {
			break
		}
		close += open
		n := 0
		for _, c := range base[open+1 : close] {
			if c < '0' || c > '9' {
				n = -1
				break
			}
			n = n*10 + int(c-'0')
		}
		if n < 0 {
			break
		}
		d.dims = append(d.dims, n)
		base = base[close+1:]
	}

	// cleanName: strip every leading '*' (already done), truncate at first '['
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		d.cleanName = name[:idx]
	} else {
		d.cleanName = name
	}

	return d
}

// schemaFieldCache memoizes fieldDescriptor parses across a decode session,
// keyed by the raw field name, since many structures share field names.
type schemaFieldCache struct {
	m map[string]fieldDescriptor
}

func newSchemaFieldCache() *schemaFieldCache {
	return &schemaFieldCache{m: make(map[string]fieldDescriptor)}
}

func (c *schemaFieldCache) get(raw string) fieldDescriptor {
	if d, ok := c.m[raw]; ok {
		return d
	}
	d := parseFieldName(raw)
	c.m[raw] = d
	return d
}
