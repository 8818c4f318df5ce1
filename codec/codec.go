// Package codec converts the hexadecimal curve coordinates produced by the
// encryption circuit into base field elements of Baby Jubjub, and remaps
// x coordinates between the Edwards and Twisted Edwards forms of the curve.
package codec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"

	"babygiant/logger"
)

const (
	// HexDigits is the number of hex digits of a fully padded coordinate.
	HexDigits = 2 * fr.Bytes

	prefix     = "0x"
	encodedLen = len(prefix) + HexDigits
)

// ErrInvalidFormat is returned when a coordinate is not 0x followed by
// exactly 64 hex digits.
var ErrInvalidFormat = errors.New("codec: coordinate must be 0x followed by 64 hex digits")

var coordinateRegexp = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)

// modulus is the base field modulus q as a 256-bit integer.
var modulus, _ = uint256.FromBig(fr.Modulus())

// Pad left-pads a 0x-prefixed hex string with zeros up to 64 hex digits.
// Any other input is returned unchanged.
func Pad(input string) string {
	if len(input) < encodedLen && strings.HasPrefix(input, prefix) {
		return prefix + strings.Repeat("0", encodedLen-len(input)) + input[len(prefix):]
	}
	return input
}

// Validate reports whether input is 0x followed by exactly 64 hex digits,
// in either case.
func Validate(input string) bool {
	return coordinateRegexp.MatchString(input)
}

// DecodeBE decodes a validated big-endian coordinate into a 256-bit integer.
// The bytes are reversed into little-endian order and read limb by limb.
func DecodeBE(input string) (*uint256.Int, error) {
	if !Validate(input) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, input)
	}
	raw, err := hex.DecodeString(input[len(prefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	le := make([]byte, len(raw))
	for i := range raw {
		le[i] = raw[len(raw)-1-i]
	}
	var z uint256.Int
	for i := range z {
		z[i] = binary.LittleEndian.Uint64(le[8*i:])
	}
	return &z, nil
}

// Decode decodes a validated big-endian coordinate and reduces it into the
// base field.
func Decode(input string) (fr.Element, error) {
	var e fr.Element
	z, err := DecodeBE(input)
	if err != nil {
		return e, err
	}
	if !z.Lt(modulus) {
		log := logger.Logger()
		log.Debug().Str("coordinate", input).Msg("coordinate exceeds the field modulus, reducing")
	}
	b := z.Bytes32()
	e.SetBytes(b[:])
	return e, nil
}

// EncodeBE is the inverse of Decode for canonical elements: 0x followed by
// 64 lowercase hex digits, big-endian.
func EncodeBE(e *fr.Element) string {
	b := e.Bytes()
	return prefix + hex.EncodeToString(b[:])
}
