package jpeg

import (
	"encoding/binary"
	"fmt"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// FrameInfo holds the pixel dimensions from a baseline frame header.
type FrameInfo struct {
	Width  uint16
	Height uint16
}

// Segment is one marker and, when the marker carries a length, the
// segment body that follows it. Body aliases the scanned buffer.
type Segment struct {
	Marker Marker
	Offset int // offset of the 0xFF that starts the marker
	Length int // value of the length field; 0 for standalone markers
	Body   []byte
}

// Truncated reports whether the stream ended inside the segment body.
func (s Segment) Truncated() bool {
	return s.Length > 0 && len(s.Body) < s.Length-2
}

// Scanner iterates over the marker segments of an in-memory JPEG stream.
// A segment body is only stepped over when the following marker is
// requested, so callers can stop at a segment without the stream having
// to hold all of it.
type Scanner struct {
	data []byte
	pos  int // next unread byte
	next int // where the following marker starts
}

// NewScanner creates a Scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next returns the next segment. It fails with ErrMalformedInput when the
// stream runs out before a marker or length field is complete, or when a
// marker does not start with 0xFF.
func (s *Scanner) Next() (Segment, error) {
	if s.next > len(s.data) {
		return Segment{}, fmt.Errorf("%w: segment body overruns stream by %d bytes",
			asseterrors.ErrMalformedInput, s.next-len(s.data))
	}
	s.pos = s.next

	if s.pos >= len(s.data) {
		return Segment{}, fmt.Errorf("%w: stream ended at offset %d without EOI",
			asseterrors.ErrMalformedInput, s.pos)
	}
	if s.data[s.pos] != 0xFF {
		return Segment{}, fmt.Errorf("%w: expected marker at offset %d, found 0x%02X",
			asseterrors.ErrMalformedInput, s.pos, s.data[s.pos])
	}
	// 0xFF fill bytes may pad the gap before a marker code.
	for s.pos+1 < len(s.data) && s.data[s.pos+1] == 0xFF {
		s.pos++
	}
	if s.pos+2 > len(s.data) {
		return Segment{}, fmt.Errorf("%w: truncated marker at offset %d",
			asseterrors.ErrMalformedInput, s.pos)
	}

	seg := Segment{
		Marker: Marker(binary.BigEndian.Uint16(s.data[s.pos:])),
		Offset: s.pos,
	}
	s.pos += 2
	s.next = s.pos

	if !seg.Marker.HasLength() {
		return seg, nil
	}

	if s.pos+2 > len(s.data) {
		return Segment{}, fmt.Errorf("%w: truncated %s length at offset %d",
			asseterrors.ErrMalformedInput, seg.Marker.Name(), s.pos)
	}
	seg.Length = int(binary.BigEndian.Uint16(s.data[s.pos:]))
	if seg.Length < 2 {
		return Segment{}, fmt.Errorf("%w: %s length %d at offset %d is shorter than its own field",
			asseterrors.ErrMalformedInput, seg.Marker.Name(), seg.Length, s.pos)
	}
	s.pos += 2
	s.next = s.pos + seg.Length - 2
	seg.Body = s.data[s.pos:min(s.next, len(s.data))]

	return seg, nil
}

// FrameSize extracts width and height from the first baseline (SOF0)
// frame header. Other SOFn segments, including progressive SOF2, are
// stepped over like any other segment, so a progressive file ends in
// ErrDimensionsNotFound.
func FrameSize(data []byte) (FrameInfo, error) {
	scanner := NewScanner(data)
	for {
		seg, err := scanner.Next()
		if err != nil {
			return FrameInfo{}, err
		}

		switch seg.Marker {
		case EOI:
			return FrameInfo{}, fmt.Errorf("%w: reached EOI at offset %d",
				asseterrors.ErrDimensionsNotFound, seg.Offset)
		case SOS:
			// The frame header always precedes the first scan.
			return FrameInfo{}, fmt.Errorf("%w: reached SOS at offset %d without a baseline frame",
				asseterrors.ErrDimensionsNotFound, seg.Offset)
		case SOF0:
			return parseFrameHeader(seg)
		}
	}
}

// parseFrameHeader reads precision (discarded), height and width.
func parseFrameHeader(seg Segment) (FrameInfo, error) {
	if len(seg.Body) < 5 {
		return FrameInfo{}, fmt.Errorf("%w: %s at offset %d holds %d bytes, need 5",
			asseterrors.ErrMalformedInput, seg.Marker.Name(), seg.Offset, len(seg.Body))
	}
	info := FrameInfo{
		Height: binary.BigEndian.Uint16(seg.Body[1:3]),
		Width:  binary.BigEndian.Uint16(seg.Body[3:5]),
	}
	if info.Width == 0 || info.Height == 0 {
		return FrameInfo{}, fmt.Errorf("%w: %s at offset %d declares a %dx%d frame",
			asseterrors.ErrMalformedInput, seg.Marker.Name(), seg.Offset, info.Width, info.Height)
	}
	return info, nil
}
