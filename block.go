package blend

import (
	"io"
	"strings"
)

// BlockHeader is the metadata of one file block.
type BlockHeader struct {
	// Code is the block's 4-byte ASCII identifier, NUL-trimmed.
	Code string
	// Size is the payload size in bytes, as declared on disk.
	Size uint32
	// OldAddress is the memory address this block occupied in the
	// writer's process; the key used for pointer resolution.
	OldAddress uint64
	// SDNAIndex indexes Schema.Structures for this block's payload shape.
	SDNAIndex uint32
	// Count is the number of consecutive structure instances in the payload.
	Count uint32
}

// block couples a BlockHeader to the materialized objects decoded from its
// payload and the file offset at which that payload begins.
type block struct {
	BlockHeader
	payloadOffset int64
	objects       []*Object
}

// headerLen is the size in bytes of one on-disk block header.
func headerLen(ptrWidth int) int64 {
	return int64(16 + ptrWidth)
}

// indexBlocks walks r starting at offset start, reading block headers back
// to back and recording each one's payload offset without reading the
// payload itself. It stops when a short read signals end of file.
func indexBlocks(r io.ReaderAt, h *Header, start int64) ([]*block, error) {
	var blocks []*block
	offt := start
	hlen := headerLen(h.PointerWidth)

	for {
		buf := make([]byte, hlen)
		n, err := r.ReadAt(buf, offt)
		if n < int(hlen) {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				return nil, err
			}
			break
		}

		br := newByteReader(buf, h.Order, h.PointerWidth)
		codeRaw, _ := br.take(4)
		code := strings.TrimRight(string(codeRaw), "\x00")

		size, err := br.uint32()
		if err != nil {
			return nil, err
		}
		oldAddr, err := br.pointer()
		if err != nil {
			return nil, err
		}
		sdnaIdx, err := br.uint32()
		if err != nil {
			return nil, err
		}
		count, err := br.uint32()
		if err != nil {
			return nil, err
		}

		payloadOffset := offt + hlen

		// verify payload fits within the file
		probe := make([]byte, 1)
		if size > 0 {
			if _, err := r.ReadAt(probe, payloadOffset+int64(size)-1); err != nil {
				return nil, &TruncatedBlockError{Offset: payloadOffset, Reason: "declared payload extends past end of file"}
			}
		}

		b := &block{
			BlockHeader: BlockHeader{
				Code:       code,
				Size:       size,
				OldAddress: oldAddr,
				SDNAIndex:  sdnaIdx,
				Count:      count,
			},
			payloadOffset: payloadOffset,
		}
		blocks = append(blocks, b)

		offt = payloadOffset + int64(size)

		if code == "ENDB" {
			break
		}
	}

	return blocks, nil
}

// readPayload reads a block's full payload into memory.
func readPayload(r io.ReaderAt, b *block) ([]byte, error) {
	if b.Size == 0 {
		return nil, nil
	}
	buf := make([]byte, b.Size)
	if _, err := r.ReadAt(buf, b.payloadOffset); err != nil {
		return nil, err
	}
	return buf, nil
}
