package modem

import (
	"fmt"
	"strings"
)

// NormalizeText collapses whitespace runs into single spaces and trims the ends.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TextToBits expands every character into its 8-bit code point, MSB first.
// Characters above U+00FF are rejected rather than truncated.
func TextToBits(text string) ([]bool, error) {
	bits := make([]bool, 0, len(text)*8)
	pos := 0
	for _, r := range text {
		if r < 0 || r > 0xff {
			return nil, fmt.Errorf("%w: %q (U+%04X) at position %d", ErrUnencodable, r, r, pos)
		}
		for i := 7; i >= 0; i-- {
			bits = append(bits, (r>>i)&1 == 1)
		}
		pos++
	}
	return bits, nil
}

// Protect applies the rate-1/2 repetition code: every bit is sent twice.
func Protect(bits []bool) []bool {
	protected := make([]bool, 0, 2*len(bits))
	for _, b := range bits {
		protected = append(protected, b, b)
	}
	return protected
}

// EncodeText returns the protected bitstream for text.
func EncodeText(text string) ([]bool, error) {
	bits, err := TextToBits(NormalizeText(text))
	if err != nil {
		return nil, err
	}
	return Protect(bits), nil
}

// Collapse undoes Protect with an OR vote: a pair decodes to 1 when either
// copy is 1. A trailing unpaired bit is dropped.
func Collapse(bits []bool) []bool {
	collapsed := make([]bool, 0, len(bits)/2)
	for i := 0; i+1 < len(bits); i += 2 {
		collapsed = append(collapsed, bits[i] || bits[i+1])
	}
	return collapsed
}

// BitsToText packs bits into bytes MSB first. Zero bytes are padding and
// incomplete trailing groups are noise; both are skipped.
func BitsToText(bits []bool) string {
	var sb strings.Builder
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			if bits[i+j] {
				b |= 1 << (7 - j)
			}
		}
		if b != 0 {
			sb.WriteRune(rune(b))
		}
	}
	return sb.String()
}

// DecodeBits turns a demodulated protected bitstream back into text.
func DecodeBits(bits []bool) string {
	return BitsToText(Collapse(bits))
}

// BitString renders bits as a string of '0' and '1'.
func BitString(bits []bool) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBitString is the inverse of BitString. Any rune other than '0' or '1'
// is an error.
func ParseBitString(s string) ([]bool, error) {
	bits := make([]bool, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			return nil, fmt.Errorf("invalid bit %q at %d", c, i)
		}
	}
	return bits, nil
}
