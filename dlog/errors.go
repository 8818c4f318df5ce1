package dlog

import "errors"

var (
	// ErrInputFormat reports a coordinate string that does not match
	// 0x + 64 hex digits after padding. Nothing has been computed yet; the
	// caller can fix the input and retry.
	ErrInputFormat = errors.New("invalid input format")

	// ErrInvalidCurvePoint reports a decoded point that is off the curve or
	// outside the prime-order subgroup.
	ErrInvalidCurvePoint = errors.New("invalid curve point")

	// ErrDlogNotFound reports that the search exhausted its range.
	ErrDlogNotFound = errors.New("discrete logarithm not found")

	// ErrInvalidArgument reports a bad thread count, bit width or form.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FormatHelp describes the accepted coordinate format.
const FormatHelp = `x and y must be hexadecimal strings of at most 32 bytes each, prefixed with 0x.
Shorter strings are left-padded with zeros. The coordinates must describe a point of the
Baby Jubjub curve in Twisted Edwards form, as returned by the exp_elgamal_decrypt function
of the noir-elgamal package.
Example of valid inputs:
  x="0xbb77a6ad63e739b4eacb2e09d6277c12ab8d8010534e0b62893f3f6bb957051"
  y="0x25797203f7a0b24925572e1cd16bf9edfce0051fb9e133774b3c257a872d7d8b"
The embedded plaintext must not exceed 1099511627775 (2^40 - 1).`

// IsFatal reports whether err means the instance itself is unusable, as
// opposed to a malformed input string or argument.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidCurvePoint) || errors.Is(err, ErrDlogNotFound)
}
