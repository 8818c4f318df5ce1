package elgamal

import (
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/twistededwards"
)

// PlaintextBits bounds the plaintexts the circuit accepts, so that every
// proven ciphertext decrypts with a 40-bit search.
const PlaintextBits = 40

// EncryptCircuit proves that (K, C) encrypts a plaintext of at most
// PlaintextBits bits under the public key A.
type EncryptCircuit struct {
	A twistededwards.Point `gnark:",public"`
	K twistededwards.Point `gnark:",public"`
	C twistededwards.Point `gnark:",public"`

	R   frontend.Variable
	Msg frontend.Variable

	curveID tedwards.ID
}

// NewEncryptCircuit returns the circuit definition over the Baby Jubjub
// curve of BN254.
func NewEncryptCircuit() *EncryptCircuit {
	return &EncryptCircuit{curveID: tedwards.BN254}
}

// Define declares the circuit constraints.
func (circuit *EncryptCircuit) Define(api frontend.API) error {
	curve, err := twistededwards.NewEdCurve(api, circuit.curveID)
	if err != nil {
		return err
	}

	// range check, the decoder gives up above 2^40 - 1
	api.ToBinary(circuit.Msg, PlaintextBits)

	return EncryptGadget(curve, circuit.R, circuit.A, circuit.Msg, circuit.K, circuit.C)
}

// EncryptGadget constrains (k, c) to be the encryption of msg under pubkey
// with randomness r.
func EncryptGadget(curve twistededwards.Curve, r frontend.Variable, pubkey twistededwards.Point, msg frontend.Variable, k, c twistededwards.Point) error {
	base := twistededwards.Point{
		X: curve.Params().Base[0],
		Y: curve.Params().Base[1],
	}
	curve.AssertIsOnCurve(pubkey)

	// project the message on to the curve
	M := curve.ScalarMul(base, msg)

	K := curve.ScalarMul(base, r)   // K = r·G
	S := curve.ScalarMul(pubkey, r) // S = r·A
	C := curve.Add(S, M)            // C = S + M

	api := curve.API()
	api.AssertIsEqual(K.X, k.X)
	api.AssertIsEqual(K.Y, k.Y)
	api.AssertIsEqual(C.X, c.X)
	api.AssertIsEqual(C.Y, c.Y)

	return nil
}
