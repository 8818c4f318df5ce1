package elgamal

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"golang.org/x/crypto/blake2b"

	"babygiant/dlog"
)

const (
	sizeFr = fr.Bytes
)

var ErrShortSeed = errors.New("elgamal: short read from randomness source")

// PublicKey elgamal public key A = s·G
type PublicKey struct {
	A twistededwards.PointAffine
}

// PrivateKey private key of an elgamal instance
type PrivateKey struct {
	PublicKey PublicKey    // copy of the associated public key
	scalar    [sizeFr]byte // secret scalar, in big Endian
}

// Ciphertext is the pair (K, C) = (r·G, r·A + m·G).
type Ciphertext struct {
	K, C twistededwards.PointAffine
}

// GenerateKey generates a public and private key pair.
func GenerateKey(r io.Reader) (*PrivateKey, error) {
	c := twistededwards.GetEdwardsCurve()

	var priv PrivateKey
	seed := make([]byte, 32)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, ErrShortSeed
	}
	h := blake2b.Sum512(seed)

	// prune the key
	// https://tools.ietf.org/html/rfc8032#section-5.1.5, key generation
	h[0] &= 0xF8
	h[31] &= 0x7F
	h[31] |= 0x40

	// reverse first bytes because setBytes interpret stream as big endian
	// but in RFC 8032 s is the first 32 bytes in little endian
	for i, j := 0, sizeFr-1; i < sizeFr; i, j = i+1, j-1 {
		priv.scalar[i] = h[j]
	}

	priv.PublicKey.A.ScalarMul(&c.Base, priv.bigScalar())
	return &priv, nil
}

func (priv *PrivateKey) bigScalar() *big.Int {
	return new(big.Int).SetBytes(priv.scalar[:])
}

// GenScalar returns a random scalar < order
func GenScalar(order *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, order)
}

// Encrypt encrypts msg under pubkey. r is the random scalar picked by the
// sender.
func Encrypt(pubkey PublicKey, r *big.Int, msg uint64) Ciphertext {
	curve := twistededwards.GetEdwardsCurve()

	var ct Ciphertext
	var M, S twistededwards.PointAffine

	// project the message on to the curve
	M.ScalarMul(&curve.Base, new(big.Int).SetUint64(msg))

	ct.K.ScalarMul(&curve.Base, r) // K = r·G
	S.ScalarMul(&pubkey.A, r)      // S = r·A
	ct.C.Add(&S, &M)               // C = S + M

	return ct
}

// Add returns a ciphertext of the sum of the two plaintexts.
func Add(a, b Ciphertext) Ciphertext {
	var res Ciphertext
	res.K.Add(&a.K, &b.K)
	res.C.Add(&a.C, &b.C)
	return res
}

// Decrypt removes the mask from ct and returns the message point m·G.
func Decrypt(priv *PrivateKey, ct Ciphertext) twistededwards.PointAffine {
	var M, S twistededwards.PointAffine

	S.ScalarMul(&ct.K, priv.bigScalar())
	S.Neg(&S)
	M.Add(&ct.C, &S)

	return M
}

// DecryptValue decrypts ct and recovers the plaintext, which must be below
// 2^40, with numThreads search workers.
func DecryptValue(priv *PrivateKey, ct Ciphertext, numThreads int) (uint64, error) {
	M := Decrypt(priv, ct)
	return dlog.NewDecoder(numThreads).RecoverPoint(&M)
}
