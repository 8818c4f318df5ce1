package babyjub

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/stretchr/testify/require"

	"babygiant/codec"
)

func TestGeneratorMatchesLibraryBase(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	require.False(t, IsIdentity(&g))

	// gnark-crypto computes in -x² + y² = 1 + d'·x²·y². The root of the
	// remap is chosen so that the generator lands on the library's base
	// point and not on its negation.
	base := twistededwards.GetEdwardsCurve().Base
	require.True(t, g.Equal(&base))

	var neg twistededwards.PointAffine
	neg.Neg(&base)
	require.False(t, g.Equal(&neg))
}

func TestLibraryCoefficient(t *testing.T) {
	curve := twistededwards.GetEdwardsCurve()

	// c²·a_lib = 168700
	var lhs fr.Element
	lhs.Square(&libraryCoefficient).Mul(&lhs, &curve.A)
	want := codec.TwistedEdwards.A()
	require.True(t, lhs.Equal(&want))

	var one, prod fr.Element
	one.SetOne()
	prod.Mul(&libraryCoefficient, &libraryCoefficientInv)
	require.True(t, prod.Equal(&one))
}

func TestLibraryBaseMultiplesRoundTrip(t *testing.T) {
	base := twistededwards.GetEdwardsCurve().Base
	g, err := Generator()
	require.NoError(t, err)

	for _, k := range []uint64{1, 5, 65545} {
		want := ScalarMul(&g, k)
		got := ScalarMul(&base, k)
		require.True(t, got.Equal(&want))

		for _, form := range []codec.Form{codec.TwistedEdwards, codec.Edwards} {
			x, y, err := ToCoordinates(&got, form)
			require.NoError(t, err)
			back, err := Build(x, y, form)
			require.NoError(t, err)
			require.True(t, back.Equal(&got))
		}
	}
}

func TestUnknownForm(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	_, _, err = ToCoordinates(&g, codec.Form(7))
	require.ErrorIs(t, err, ErrUnknownForm)
	_, err = FromCoordinates(g.X, g.Y, codec.Form(7))
	require.ErrorIs(t, err, ErrUnknownForm)
}

func TestValidateRejectsOffCurve(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()
	bad := g
	bad.Y.Add(&bad.Y, &one)
	require.ErrorIs(t, Validate(&bad), ErrNotOnCurve)
}

func TestValidateRejectsSmallSubgroup(t *testing.T) {
	// (0, -1) has order 2.
	var x, y fr.Element
	y.SetOne()
	y.Neg(&y)
	_, err := Build(x, y, codec.TwistedEdwards)
	require.ErrorIs(t, err, ErrNotInSubgroup)

	// G + (0, -1) is on the curve with order 2r.
	g, err := Generator()
	require.NoError(t, err)
	low := twistededwards.PointAffine{X: x, Y: y}
	var mixed twistededwards.PointAffine
	mixed.Add(&g, &low)
	require.True(t, mixed.IsOnCurve())
	require.ErrorIs(t, Validate(&mixed), ErrNotInSubgroup)
}

func TestIdentityIsValid(t *testing.T) {
	id := Identity()
	require.True(t, IsIdentity(&id))
	require.NoError(t, Validate(&id))

	g, err := Generator()
	require.NoError(t, err)
	zero := ScalarMul(&g, 0)
	require.True(t, IsIdentity(&zero))
}

func TestCoordinatesRoundTrip(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	p := ScalarMul(&g, 943594123598)

	for _, form := range []codec.Form{codec.TwistedEdwards, codec.Edwards} {
		t.Run(form.String(), func(t *testing.T) {
			x, y, err := ToCoordinates(&p, form)
			require.NoError(t, err)
			q, err := Build(x, y, form)
			require.NoError(t, err)
			require.True(t, q.Equal(&p))
		})
	}
}

func TestEdwardsFormUsesSqrt168700(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	twX, _, err := ToCoordinates(&g, codec.TwistedEdwards)
	require.NoError(t, err)
	edX, _, err := ToCoordinates(&g, codec.Edwards)
	require.NoError(t, err)

	want := codec.TwistedToEdwards(&twX)
	require.True(t, edX.Equal(&want))
}

func TestEncodeDecode(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	p := ScalarMul(&g, 65545)

	xs, ys, err := Encode(&p, codec.TwistedEdwards)
	require.NoError(t, err)
	require.Equal(t, "0x05e712cbd0bee349ab612d42b81672d48546ab29a90798ad2b88f64585f0c805", xs)
	require.Equal(t, codec.Pad("0xbdb2d53146a7d643d6c6870319fe563a253f78c18a48e3fa45b6d7d9d3c310"), ys)

	x, err := codec.Decode(xs)
	require.NoError(t, err)
	y, err := codec.Decode(ys)
	require.NoError(t, err)
	q, err := Build(x, y, codec.TwistedEdwards)
	require.NoError(t, err)
	require.True(t, q.Equal(&p))
}

func TestNormalize(t *testing.T) {
	g, err := Generator()
	require.NoError(t, err)
	proj := Normalize(&g)
	var back twistededwards.PointAffine
	back.FromProj(&proj)
	require.True(t, back.Equal(&g))
}
