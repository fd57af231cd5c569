package stego

import "bytes"

// Embed returns a copy of cover with the bits of data written, most
// significant bit first, into the least significant bit of consecutive
// bytes. Every other bit of cover is preserved. cover itself is not
// modified, and nothing is written when data does not fit.
func Embed(cover, data []byte) ([]byte, error) {
	required := uint64(len(data)) * 8
	if required > uint64(len(cover)) {
		return nil, &CapacityError{Required: required, Available: uint64(len(cover))}
	}

	out := bytes.Clone(cover)
	if out == nil {
		out = []byte{}
	}
	for i, b := range data {
		base := i * 8
		for j := 0; j < 8; j++ {
			bit := (b >> (7 - j)) & 1
			out[base+j] = (out[base+j] &^ 1) | bit
		}
	}
	return out, nil
}

// Extract reads n bytes back from the least significant bits of src, in
// the same order Embed writes them.
func Extract(src []byte, n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	required := uint64(n) * 8
	if required > uint64(len(src)) {
		return nil, &CapacityError{Required: required, Available: uint64(len(src))}
	}

	out := make([]byte, n)
	for i := range out {
		var b byte
		for _, px := range src[i*8 : i*8+8] {
			b = b<<1 | px&1
		}
		out[i] = b
	}
	return out, nil
}
