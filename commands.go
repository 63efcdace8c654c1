package glcd

// Controller addressing and mode commands shared by the supported panels.
const (
	setLowColumn     = 0x00
	setHighColumn    = 0x10
	setStartLine     = 0x40
	setContrast      = 0x81
	setNormalDisplay = 0xA6
	setInvertDisplay = 0xA7
	setDisplayOff    = 0xAE
	setDisplayOn     = 0xAF
	setPageAddr      = 0xB0
)
