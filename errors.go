package blend

import (
	"errors"
	"strconv"
)

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrBadMagic is returned when the first 7 bytes of the file do not match "BLENDER".
	ErrBadMagic = errors.New("blend: bad magic, not a recognized save file")

	// ErrNoSchema is returned when no DNA1 block is present in the file.
	ErrNoSchema = errors.New("blend: no DNA1 schema block found")

	// ErrSchemaFieldCollision is returned by Open, when the RejectFieldCollisions()
	// option is set, if two fields of the same structure clean to the same name
	// (e.g. "*foo" and "foo").
	ErrSchemaFieldCollision = errors.New("blend: schema field name collision")
)

// TruncatedBlockError is returned when a block's declared payload runs past
// end of file. A short block header is not an error: it ends the block scan.
type TruncatedBlockError struct {
	Offset int64
	Reason string
}

func (e *TruncatedBlockError) Error() string {
	return "blend: truncated block at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Reason
}

// MalformedSchemaError is returned when the DNA1 payload is missing an expected
// tag, or a count/index in it overruns the buffer.
type MalformedSchemaError struct {
	Tag    string
	Reason string
}

func (e *MalformedSchemaError) Error() string {
	if e.Tag == "" {
		return "blend: malformed schema: " + e.Reason
	}
	return "blend: malformed schema: tag " + e.Tag + ": " + e.Reason
}
