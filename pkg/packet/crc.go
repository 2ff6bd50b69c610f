package packet

import (
	"fmt"
	"strconv"
)

const ChecksumKey = "CRC"

// Checksum is CRC-8 with polynomial x^8 + x^2 + x + 1 over the bytes of s.
func Checksum(s string) uint8 {
	const polynomial = 0x07
	var crc uint8

	for i := 0; i < len(s); i++ {
		crc ^= s[i]
		for j := 0; j < 8; j++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Sign returns a copy of p with a trailing CRC field covering the encoding
// of every other field. An existing CRC field is replaced.
func (p Packet) Sign() (Packet, error) {
	unsigned := p.withoutChecksum()
	s, err := unsigned.Encode()
	if err != nil {
		return Packet{}, err
	}
	unsigned.Fields = append(unsigned.Fields, Field{Key: ChecksumKey, Value: fmt.Sprintf("%02X", Checksum(s))})
	return unsigned, nil
}

// Verify reports whether p carries a CRC field that matches its contents.
func (p Packet) Verify() bool {
	want, ok := p.Get(ChecksumKey)
	if !ok {
		return false
	}
	sum, err := strconv.ParseUint(want, 16, 8)
	if err != nil {
		return false
	}
	s, err := p.withoutChecksum().Encode()
	return err == nil && uint8(sum) == Checksum(s)
}

func (p Packet) withoutChecksum() Packet {
	out := Packet{Kind: p.Kind}
	for _, f := range p.Fields {
		if f.Key != ChecksumKey {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}
