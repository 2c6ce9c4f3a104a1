// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sharecode

import "fmt"

// RFC 1924 alphabet. encoding/ascii85 uses the Adobe alphabet instead,
// which would not read codes made by earlier versions of the tool.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{|}~"

var decodeTable = func() [256]int16 {
	var t [256]int16
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int16(i)
	}
	return t
}()

// encode85 pads src to a multiple of 4 bytes, encodes each group as 5
// characters and drops the characters that only encode padding.
func encode85(src []byte) string {
	padding := (4 - len(src)%4) % 4
	buf := make([]byte, len(src)+padding)
	copy(buf, src)

	out := make([]byte, 0, len(buf)/4*5)
	for i := 0; i < len(buf); i += 4 {
		v := uint32(buf[i])<<24 | uint32(buf[i+1])<<16 | uint32(buf[i+2])<<8 | uint32(buf[i+3])
		var group [5]byte
		for j := 4; j >= 0; j-- {
			group[j] = alphabet[v%85]
			v /= 85
		}
		out = append(out, group[:]...)
	}
	return string(out[:len(out)-padding])
}

// decode85 is the inverse of encode85. Short final groups are padded
// with the highest digit, as Python's base64.b85decode does.
func decode85(src string) ([]byte, error) {
	padding := (5 - len(src)%5) % 5
	buf := make([]byte, len(src), len(src)+padding)
	copy(buf, src)
	for i := 0; i < padding; i++ {
		buf = append(buf, '~')
	}

	out := make([]byte, 0, len(buf)/5*4)
	for i := 0; i < len(buf); i += 5 {
		var v uint64
		for j := 0; j < 5; j++ {
			d := decodeTable[buf[i+j]]
			if d < 0 {
				return nil, fmt.Errorf("invalid base85 character %q at %d", buf[i+j], i+j)
			}
			v = v*85 + uint64(d)
		}
		if v > 0xffffffff {
			return nil, fmt.Errorf("base85 overflow in group at %d", i)
		}
		out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return out[:len(out)-padding], nil
}
