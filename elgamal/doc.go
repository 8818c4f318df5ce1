// Package elgamal implements exponential ElGamal over Baby Jubjub.
//
// Messages are encoded as m·G, so ciphertexts add up homomorphically and
// decryption ends in a bounded discrete logarithm, solved by package dlog.
package elgamal
