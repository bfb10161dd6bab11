package common

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal. Nil is fine.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
