package blend

import (
	"encoding/binary"
	"io"
)

const headerSize = 12

var magicIdentifier = [7]byte{'B', 'L', 'E', 'N', 'D', 'E', 'R'}

// Header is the fixed 12-byte prelude of every save file: magic identifier,
// pointer width, byte order and writer version.
type Header struct {
	// Magic is always "BLENDER" for a well-formed file.
	Magic string
	// PointerWidth is 4 or 8, the width in bytes of every address field
	// in the rest of the file.
	PointerWidth int
	// Order is the byte order governing every subsequent multi-byte
	// integer in the file.
	Order binary.ByteOrder
	// Version is the 3-byte ASCII writer version tag, verbatim (e.g. "279").
	Version string
}

// parseHeader reads exactly headerSize bytes from the start of r and decodes
// the prelude. It fails with ErrBadMagic if the first 7 bytes don't match.
func parseHeader(r io.ReaderAt) (*Header, error) {
	buf := make([]byte, headerSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, err
	}

	for i, c := range magicIdentifier {
		if buf[i] != c {
			return nil, ErrBadMagic
		}
	}

	h := &Header{Magic: string(buf[:7])}

	switch buf[7] {
	case '-':
		h.PointerWidth = 8
	case '_':
		h.PointerWidth = 4
	default:
		return nil, ErrBadMagic
	}

	switch buf[8] {
	case 'v':
		h.Order = binary.LittleEndian
	case 'V':
		h.Order = binary.BigEndian
	default:
		return nil, ErrBadMagic
	}

	h.Version = string(buf[9:12])

	return h, nil
}
