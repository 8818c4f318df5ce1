// Package babyjub builds and validates Baby Jubjub points on top of the
// gnark-crypto twisted Edwards implementation for BN254.
package babyjub

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"babygiant/codec"
)

var (
	ErrNotOnCurve    = errors.New("point is not on the Baby Jubjub curve")
	ErrNotInSubgroup = errors.New("point is not in the prime-order subgroup of Baby Jubjub")
	ErrUnknownForm   = errors.New("unknown curve form")
)

// Base point of the prime-order subgroup, Twisted Edwards form (EIP-2494).
const (
	generatorX = "5299619240641551281634865583518297030282874472190772894086521144482721001553"
	generatorY = "16950150798460657717958625567821834550301663161624707787222815936182638968203"
)

// Order returns the order of the prime-order subgroup.
func Order() *big.Int {
	c := twistededwards.GetEdwardsCurve()
	return new(big.Int).Set(&c.Order)
}

var (
	// libraryCoefficient maps Twisted Edwards x coordinates to the form
	// gnark-crypto computes in, -x² + y² = 1 + d'·x²·y². It is the root of
	// 168700/a_lib whose image of the EIP-2494 generator is the library's
	// own base point.
	libraryCoefficient    fr.Element
	libraryCoefficientInv fr.Element
)

func init() {
	c, err := anchoredCoefficient()
	if err != nil {
		panic(fmt.Sprintf("babyjub: %v", err))
	}
	libraryCoefficient = c
	libraryCoefficientInv.Inverse(&c)
}

// anchoredCoefficient picks the sign of sqrt(168700/a_lib) that takes the
// EIP-2494 generator onto GetEdwardsCurve().Base.
func anchoredCoefficient() (fr.Element, error) {
	curve := twistededwards.GetEdwardsCurve()
	src := codec.TwistedEdwards.A()
	c, err := codec.RemapCoefficient(&src, &curve.A)
	if err != nil {
		return c, err
	}
	gx, ok := new(big.Int).SetString(generatorX, 10)
	if !ok {
		return c, fmt.Errorf("bad generator x %q", generatorX)
	}
	var x fr.Element
	x.SetBigInt(gx)
	x.Mul(&x, &c)
	if x.Equal(&curve.Base.X) {
		return c, nil
	}
	x.Neg(&x)
	if x.Equal(&curve.Base.X) {
		c.Neg(&c)
		return c, nil
	}
	return c, errors.New("generator does not map onto the library base point")
}

// FromCoordinates remaps (x, y), given in form, into the library's curve
// form. The result is not validated.
func FromCoordinates(x, y fr.Element, form codec.Form) (twistededwards.PointAffine, error) {
	var p twistededwards.PointAffine
	switch form {
	case codec.TwistedEdwards:
	case codec.Edwards:
		x = codec.EdwardsToTwisted(&x)
	default:
		return p, fmt.Errorf("%w: %v", ErrUnknownForm, form)
	}
	p.X.Mul(&x, &libraryCoefficient)
	p.Y.Set(&y)
	return p, nil
}

// ToCoordinates is the inverse of FromCoordinates.
func ToCoordinates(p *twistededwards.PointAffine, form codec.Form) (x, y fr.Element, err error) {
	x.Mul(&p.X, &libraryCoefficientInv)
	y.Set(&p.Y)
	switch form {
	case codec.TwistedEdwards:
	case codec.Edwards:
		x = codec.TwistedToEdwards(&x)
	default:
		return x, y, fmt.Errorf("%w: %v", ErrUnknownForm, form)
	}
	return x, y, nil
}

// Validate checks that p lies on the curve and, assuming it does, in the
// prime-order subgroup.
func Validate(p *twistededwards.PointAffine) error {
	if !p.IsOnCurve() {
		return ErrNotOnCurve
	}
	c := twistededwards.GetEdwardsCurve()
	var q twistededwards.PointAffine
	q.ScalarMul(p, &c.Order)
	if !IsIdentity(&q) {
		return ErrNotInSubgroup
	}
	return nil
}

// Build remaps and validates a point.
func Build(x, y fr.Element, form codec.Form) (twistededwards.PointAffine, error) {
	p, err := FromCoordinates(x, y, form)
	if err != nil {
		return p, err
	}
	return p, Validate(&p)
}

// Generator returns the base point A, built and validated like any other
// input point.
func Generator() (twistededwards.PointAffine, error) {
	gx, ok := new(big.Int).SetString(generatorX, 10)
	if !ok {
		return twistededwards.PointAffine{}, fmt.Errorf("babyjub: bad generator x %q", generatorX)
	}
	gy, ok := new(big.Int).SetString(generatorY, 10)
	if !ok {
		return twistededwards.PointAffine{}, fmt.Errorf("babyjub: bad generator y %q", generatorY)
	}
	var x, y fr.Element
	x.SetBigInt(gx)
	y.SetBigInt(gy)
	return Build(x, y, codec.TwistedEdwards)
}

// Identity returns the neutral element (0, 1).
func Identity() twistededwards.PointAffine {
	var p twistededwards.PointAffine
	p.Y.SetOne()
	return p
}

// IsIdentity reports whether p is the neutral element.
func IsIdentity(p *twistededwards.PointAffine) bool {
	var one fr.Element
	one.SetOne()
	return p.X.IsZero() && p.Y.Equal(&one)
}

// Normalize returns p in the projective representation the solver walks
// giant steps in.
func Normalize(p *twistededwards.PointAffine) twistededwards.PointProj {
	var q twistededwards.PointProj
	q.FromAffine(p)
	return q
}

// ScalarMul returns k·p.
func ScalarMul(p *twistededwards.PointAffine, k uint64) twistededwards.PointAffine {
	var res twistededwards.PointAffine
	res.ScalarMul(p, new(big.Int).SetUint64(k))
	return res
}

// Encode writes p as a pair of big-endian hex coordinates in form.
func Encode(p *twistededwards.PointAffine, form codec.Form) (x, y string, err error) {
	ex, ey, err := ToCoordinates(p, form)
	if err != nil {
		return "", "", err
	}
	return codec.EncodeBE(&ex), codec.EncodeBE(&ey), nil
}
