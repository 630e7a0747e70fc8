package payload

// Generate produces a deterministic byte sequence of the given length from
// two seed bytes: byte[i] = (i*a + b) mod 256. The intermediate arithmetic
// is done in uint64 so large indices never overflow. The same (length, a, b)
// always yields the same bytes, on every run and every implementation.
func Generate(length int, a, b byte) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = byte((uint64(i)*uint64(a) + uint64(b)) % 256)
	}
	return data
}
