// Package common holds small helpers shared across the GlidePath client
// layers.
package common

// WipeByteArray overwrites the slice with zeroes. Used to scrub passwords
// from memory once they have been handed to the identity provider.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
