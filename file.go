package blend

import "os"

// File is the top-level handle produced by Open: the decoded header,
// schema, block index and the full materialized object graph. Once Open
// returns, File is immutable and safe for concurrent read-only use: all of
// its maps and slices are built during construction and never mutated
// afterward.
type File struct {
	header  *Header
	schema  *Schema
	blocks  []*block
	objects []*Object
}

// Open reads path end to end: header, block index, schema, then the full
// object graph, and returns an immutable File. The underlying file handle
// is closed before Open returns, win or lose: nothing is held open past
// construction.
func Open(path string, opts ...Option) (*File, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	header, err := parseHeader(fh)
	if err != nil {
		return nil, err
	}

	blocks, err := indexBlocks(fh, header, headerSize)
	if err != nil {
		return nil, err
	}

	dnaBlock, err := findSchemaBlock(blocks)
	if err != nil {
		return nil, err
	}

	dnaPayload, err := readPayload(fh, dnaBlock)
	if err != nil {
		return nil, err
	}

	schema, err := decodeSchema(dnaPayload, header.Order)
	if err != nil {
		return nil, err
	}

	mat := newMaterializer(schema, header.Order, header.PointerWidth, cfg.logger, cfg.rejectCollisions)
	objects, err := mat.run(fh, blocks)
	if err != nil {
		return nil, err
	}

	return &File{
		header:  header,
		schema:  schema,
		blocks:  blocks,
		objects: objects,
	}, nil
}

// Header returns the decoded 12-byte prelude.
func (f *File) Header() *Header {
	return f.header
}

// Schema returns the decoded SDNA layout table.
func (f *File) Schema() *Schema {
	return f.schema
}

// findSchemaBlock returns the single DNA1 block, or ErrNoSchema if there is
// not exactly one.
func findSchemaBlock(blocks []*block) (*block, error) {
	var found *block
	for _, b := range blocks {
		if b.Code == "DNA1" {
			if found != nil {
				return nil, ErrNoSchema
			}
			found = b
		}
	}
	if found == nil {
		return nil, ErrNoSchema
	}
	return found, nil
}
