package scene

// Color is an RGB colour with components in [0,1].
type Color struct {
	R, G, B float32
}

// NewColorHex builds a Color from a 0xRRGGBB value.
func NewColorHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// Hex packs the colour back into 0xRRGGBB, rounding each channel.
func (c Color) Hex() uint32 {
	return channel(c.R)<<16 | channel(c.G)<<8 | channel(c.B)
}

func channel(v float32) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint32(v*255 + 0.5)
}
