// Package jpeg walks the marker segments of a JPEG stream far enough to
// find the frame dimensions. Pixel data is never decoded.
package jpeg

import "fmt"

// Marker is a full two-byte JPEG marker code, 0xFFxx.
type Marker uint16

const (
	TEM  Marker = 0xFF01 // private, no length
	SOF0 Marker = 0xFFC0 // baseline DCT
	SOF2 Marker = 0xFFC2 // progressive DCT, not matched
	DHT  Marker = 0xFFC4
	JPG  Marker = 0xFFC8
	DAC  Marker = 0xFFCC
	RST0 Marker = 0xFFD0 // RSTn = RST0+n, n = 0-7
	RST7 Marker = 0xFFD7
	SOI  Marker = 0xFFD8
	EOI  Marker = 0xFFD9
	SOS  Marker = 0xFFDA
	DQT  Marker = 0xFFDB
	DNL  Marker = 0xFFDC
	DRI  Marker = 0xFFDD
	DHP  Marker = 0xFFDE
	EXP  Marker = 0xFFDF
	APP0 Marker = 0xFFE0 // APPn = APP0+n, n = 0-15
	JPG0 Marker = 0xFFF0 // JPGn = JPG0+n, n = 0-13
	COM  Marker = 0xFFFE
)

var markerNames = map[Marker]string{
	TEM: "TEM",
	DHT: "DHT",
	JPG: "JPG",
	DAC: "DAC",
	SOI: "SOI",
	EOI: "EOI",
	SOS: "SOS",
	DQT: "DQT",
	DNL: "DNL",
	DRI: "DRI",
	DHP: "DHP",
	EXP: "EXP",
	COM: "COM",
}

// Name returns the conventional mnemonic for the marker.
func (m Marker) Name() string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	switch {
	case m >= SOF0 && m <= SOF0+0xF:
		return fmt.Sprintf("SOF%d", m-SOF0)
	case m >= RST0 && m <= RST7:
		return fmt.Sprintf("RST%d", m-RST0)
	case m >= APP0 && m <= APP0+0xF:
		return fmt.Sprintf("APP%d", m-APP0)
	case m >= JPG0 && m <= JPG0+0xD:
		return fmt.Sprintf("JPG%d", m-JPG0)
	}
	return fmt.Sprintf("RES%02X", uint8(m))
}

func (m Marker) String() string {
	return fmt.Sprintf("%s(0x%04X)", m.Name(), uint16(m))
}

// IsRST reports whether m is one of the restart markers.
func (m Marker) IsRST() bool {
	return m >= RST0 && m <= RST7
}

// HasLength reports whether a length field follows the marker. SOI, TEM
// and the restart markers stand alone. EOI ends the stream and is never
// followed by a segment either.
func (m Marker) HasLength() bool {
	return m != SOI && m != EOI && m != TEM && !m.IsRST()
}
