package devbitmap

// Bits are numbered MSB-first: position 0 is 0x80, position 7 is 0x01.

// bitMask returns the mask for the single bit at position p.
func bitMask(p uint) byte {
	return byte(0x80) >> p
}

// rangeMask returns a mask with positions lo..hi (inclusive) set.
func rangeMask(lo, hi uint) byte {
	return (byte(0xFF) >> lo) & (byte(0xFF) << (7 - hi))
}

// applyMask sets (value=true) or clears the masked bits of b.
func applyMask(b, mask byte, value bool) byte {
	if value {
		return b | mask
	}
	return b &^ mask
}

// fillByte is the byte value of a fully covered interior byte.
func fillByte(value bool) byte {
	if value {
		return 0xFF
	}
	return 0x00
}

// bitAt reports the bit at position p of b.
func bitAt(b byte, p uint) bool {
	return b&bitMask(p) != 0
}
