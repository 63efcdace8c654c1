package glcd

const (
	rnx16DefaultWidth  = 128
	rnx16DefaultHeight = 32
	rnx16StartColumn   = 4
)

// RNX16Profile is the OLED panel in the ReadyNAS RNX16 front bezel. The
// controller RAM holds 4 pages (32 rows) scanned onto the nominally 128x64
// glass; a frame is therefore 4*128 bytes. The visible area starts at RAM
// column 4 and the panel wants the non-inverted mode and start-line
// commands ahead of every frame.
var RNX16Profile = Profile{
	Width:       rnx16DefaultWidth,
	Height:      rnx16DefaultHeight,
	StartColumn: rnx16StartColumn,
	Setup:       []byte{setNormalDisplay, setStartLine},
}

// RNX16HalfProfile is the two-page variant of the same panel family, mapped
// from RAM column 0.
var RNX16HalfProfile = Profile{
	Width:       rnx16DefaultWidth,
	Height:      16,
	StartColumn: 0,
	Setup:       []byte{setNormalDisplay, setStartLine},
}

// RNX16 is a driver for the ReadyNAS RNX16 front panel OLED.
func RNX16(conn Conn, config *Config) (Display, error) {
	return NewPaged(conn, RNX16Profile, config)
}
