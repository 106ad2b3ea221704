package bls381

// Flag bits occupy the three most significant bits of the leading byte of an
// encoded point, following the ZCash BLS12-381 layout:
//
//	bit 7: set iff the encoding is compressed
//	bit 6: set iff the point is the point at infinity
//	bit 5: set iff y is lexicographically largest (compressed, finite only)
const (
	maskCompressed = byte(1) << 7
	maskInfinity   = byte(1) << 6
	maskLexLargest = byte(1) << 5

	maskFlags = maskCompressed | maskInfinity | maskLexLargest
)

// EncodingFlags is the decoded form of the three flag bits.
type EncodingFlags struct {
	Compressed bool
	Infinity   bool
	LexLargest bool
}

func parseFlags(leading byte) EncodingFlags {
	return EncodingFlags{
		Compressed: leading&maskCompressed != 0,
		Infinity:   leading&maskInfinity != 0,
		LexLargest: leading&maskLexLargest != 0,
	}
}

// encode ORs the flag bits into the leading byte of buf.
func (f EncodingFlags) encode(buf []byte) {
	if f.Compressed {
		buf[0] |= maskCompressed
	}
	if f.Infinity {
		buf[0] |= maskInfinity
	}
	if f.Compressed && !f.Infinity && f.LexLargest {
		buf[0] |= maskLexLargest
	}
}

// consistent reports whether the flags are a legal combination for the
// requested mode.
func (f EncodingFlags) consistent(compressed bool) bool {
	if f.Compressed != compressed {
		return false
	}
	if f.Infinity && f.LexLargest {
		return false
	}
	if !f.Compressed && f.LexLargest {
		return false
	}
	return true
}
