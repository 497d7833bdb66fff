package tag

// Mask is a bitset over tags, used as a physics layer filter
type Mask uint64

// MaskAll matches every layer
const MaskAll Mask = ^Mask(0)

// MaskOf builds a mask with one bit per tag
func MaskOf(tags ...Tag) Mask {
	var m Mask
	for _, t := range tags {
		m |= 1 << uint(t)
	}
	return m
}

// Has reports whether the layer bit for t is set
func (m Mask) Has(t Tag) bool {
	return m&(1<<uint(t)) != 0
}
