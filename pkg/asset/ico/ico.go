// Package ico checks that a payload is an ICO container before it is
// passed through to the literal encoder unchanged.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tc-hib/winres"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

const (
	headerSize = 6
	entrySize  = 16
)

// Image describes one directory entry.
type Image struct {
	Width  int // 0 in the file means 256
	Height int
	Size   int
	Offset int
}

// Info is what the ICONDIR declares, plus the icon as winres loaded it.
type Info struct {
	Images []Image
	Icon   *winres.Icon
}

// Validate parses the icon directory, checks every image lies inside the
// payload, then loads the file the way a Windows resource compiler would.
func Validate(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("%w: icon has no bytes", asseterrors.ErrEmptyInput)
	}
	if len(data) < headerSize {
		return Info{}, fmt.Errorf("%w: %d bytes is shorter than the icon header", asseterrors.ErrInvalidIcon, len(data))
	}

	reserved := binary.LittleEndian.Uint16(data[0:2])
	kind := binary.LittleEndian.Uint16(data[2:4])
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if reserved != 0 || kind != 1 {
		return Info{}, fmt.Errorf("%w: header reserved=%d type=%d", asseterrors.ErrInvalidIcon, reserved, kind)
	}
	if count == 0 {
		return Info{}, fmt.Errorf("%w: directory lists no images", asseterrors.ErrInvalidIcon)
	}
	if len(data) < headerSize+count*entrySize {
		return Info{}, fmt.Errorf("%w: directory of %d entries is truncated", asseterrors.ErrInvalidIcon, count)
	}

	info := Info{Images: make([]Image, 0, count)}
	for i := 0; i < count; i++ {
		entry := data[headerSize+i*entrySize:]
		img := Image{
			Width:  dimension(entry[0]),
			Height: dimension(entry[1]),
			Size:   int(binary.LittleEndian.Uint32(entry[8:12])),
			Offset: int(binary.LittleEndian.Uint32(entry[12:16])),
		}
		if img.Size == 0 || img.Offset < headerSize+count*entrySize || img.Offset+img.Size > len(data) {
			return Info{}, fmt.Errorf("%w: image %d (%d bytes at %d) lies outside the %d byte file",
				asseterrors.ErrInvalidIcon, i, img.Size, img.Offset, len(data))
		}
		info.Images = append(info.Images, img)
	}

	icon, err := winres.LoadICO(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", asseterrors.ErrInvalidIcon, err)
	}
	info.Icon = icon
	return info, nil
}

func dimension(b byte) int {
	if b == 0 {
		return 256
	}
	return int(b)
}
