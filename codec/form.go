package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Form is the equation a coordinate pair is written against. Both forms
// describe the same group; only the x coordinate differs, by a constant
// factor.
type Form int

const (
	// TwistedEdwards is 168700·x² + y² = 1 + 168696·x²·y², the form used by
	// the encryption circuit and by EIP-2494.
	TwistedEdwards Form = iota
	// Edwards is x² + y² = 1 + (168696/168700)·x²·y².
	Edwards
)

const twistedA = 168700

// ErrNoRemap is returned when a_src/a_dst has no square root in the base
// field, so no coordinate remap between the two forms exists.
var ErrNoRemap = errors.New("codec: curve forms are not related by an x-coordinate remap")

// A returns the a coefficient of the form's curve equation.
func (f Form) A() fr.Element {
	var a fr.Element
	switch f {
	case Edwards:
		a.SetOne()
	default:
		a.SetUint64(twistedA)
	}
	return a
}

func (f Form) String() string {
	switch f {
	case TwistedEdwards:
		return "twisted"
	case Edwards:
		return "edwards"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// ParseForm parses the textual name of a form.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "twisted", "twisted-edwards", "te":
		return TwistedEdwards, nil
	case "edwards", "ed":
		return Edwards, nil
	default:
		return TwistedEdwards, fmt.Errorf("codec: unknown curve form %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Form) UnmarshalText(text []byte) error {
	form, err := ParseForm(string(text))
	if err != nil {
		return err
	}
	*f = form
	return nil
}

// RemapCoefficient returns c such that (c·x, y) lies on the curve with
// coefficient aDst whenever (x, y) lies on the curve with coefficient aSrc,
// that is c² = aSrc/aDst. Equal coefficients give exactly 1; otherwise the
// smaller of the two roots ±c is returned.
func RemapCoefficient(aSrc, aDst *fr.Element) (fr.Element, error) {
	var c fr.Element
	if aSrc.Equal(aDst) {
		c.SetOne()
		return c, nil
	}
	if aDst.IsZero() {
		return c, ErrNoRemap
	}
	var ratio fr.Element
	ratio.Inverse(aDst).Mul(&ratio, aSrc)
	if c.Sqrt(&ratio) == nil {
		return c, ErrNoRemap
	}
	if c.LexicographicallyLargest() {
		c.Neg(&c)
	}
	return c, nil
}

// edwardsCoefficient is sqrt(168700), mapping Twisted Edwards x to Edwards x.
var edwardsCoefficient, edwardsCoefficientInv fr.Element

func init() {
	src, dst := TwistedEdwards.A(), Edwards.A()
	c, err := RemapCoefficient(&src, &dst)
	if err != nil {
		panic(fmt.Sprintf("codec: sqrt(%d) does not exist in the base field", twistedA))
	}
	edwardsCoefficient = c
	edwardsCoefficientInv.Inverse(&c)
}

// TwistedToEdwards maps a Twisted Edwards x coordinate to the Edwards form.
func TwistedToEdwards(x *fr.Element) fr.Element {
	var res fr.Element
	res.Mul(x, &edwardsCoefficient)
	return res
}

// EdwardsToTwisted maps an Edwards x coordinate to the Twisted Edwards form.
func EdwardsToTwisted(x *fr.Element) fr.Element {
	var res fr.Element
	res.Mul(x, &edwardsCoefficientInv)
	return res
}
