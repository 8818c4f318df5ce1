// Package dlog recovers the plaintext of an additively homomorphic ElGamal
// ciphertext over Baby Jubjub once the circuit has reduced it to the
// message point p·A, where p is at most 2^40 - 1.
//
//	p, err := dlog.Recover(x, y, runtime.NumCPU())
package dlog

import (
	"errors"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"babygiant/babyjub"
	"babygiant/bsgs"
	"babygiant/codec"
	"babygiant/logger"
)

const (
	// DefaultBitWidth bounds the plaintext to [0, 2^40).
	DefaultBitWidth = 40

	// MaxPlaintext is the largest plaintext Recover can return.
	MaxPlaintext = 1<<DefaultBitWidth - 1
)

// Recover decodes the message point (x, y), given in Twisted Edwards form,
// and returns its discrete logarithm in base of the Baby Jubjub generator,
// searching with numThreads workers.
func Recover(x, y string, numThreads int) (uint64, error) {
	return NewDecoder(numThreads).Recover(x, y)
}

// Decoder holds the parameters of a recovery.
type Decoder struct {
	Threads  int
	Form     codec.Form
	BitWidth uint
}

// NewDecoder returns a decoder for 40-bit plaintexts given in Twisted
// Edwards form.
func NewDecoder(threads int) *Decoder {
	return &Decoder{
		Threads:  threads,
		Form:     codec.TwistedEdwards,
		BitWidth: DefaultBitWidth,
	}
}

// Recover validates and decodes the coordinates, builds and validates the
// generator and the message point, and runs the search. Format and point
// errors are returned before any search work starts.
func (d *Decoder) Recover(x, y string) (uint64, error) {
	ex, err := decodeCoordinate("x", x)
	if err != nil {
		return 0, err
	}
	ey, err := decodeCoordinate("y", y)
	if err != nil {
		return 0, err
	}
	if err := d.check(); err != nil {
		return 0, err
	}
	b, err := babyjub.FromCoordinates(ex, ey, d.Form)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return d.RecoverPoint(&b)
}

// RecoverPoint runs the validation and the search on a point already in
// the curve library's form.
func (d *Decoder) RecoverPoint(b *twistededwards.PointAffine) (uint64, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	a, err := babyjub.Generator()
	if err != nil {
		return 0, fmt.Errorf("%w: generator: %w", ErrInvalidCurvePoint, err)
	}
	if err := babyjub.Validate(b); err != nil {
		return 0, fmt.Errorf("%w: (x,y): %w", ErrInvalidCurvePoint, err)
	}
	target := babyjub.Normalize(b)

	log := logger.Logger()
	start := time.Now()
	p, err := bsgs.Solve(&a, &target, d.BitWidth, d.Threads)
	switch {
	case errors.Is(err, bsgs.ErrNotFound):
		return 0, fmt.Errorf("%w: make sure the embedded plaintext is an unsigned integer between 0 and %d: %w",
			ErrDlogNotFound, uint64(1)<<d.BitWidth-1, err)
	case errors.Is(err, bsgs.ErrBitWidth), errors.Is(err, bsgs.ErrWorkers):
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case err != nil:
		return 0, err
	}
	log.Debug().Uint64("plaintext", p).Int("threads", d.Threads).Dur("took", time.Since(start)).Msg("recovered plaintext")
	return p, nil
}

func (d *Decoder) check() error {
	if d.Threads < 1 {
		return fmt.Errorf("%w: number of threads must be at least 1, got %d", ErrInvalidArgument, d.Threads)
	}
	if d.BitWidth < 2 || d.BitWidth > bsgs.MaxBitWidth || d.BitWidth%2 != 0 {
		return fmt.Errorf("%w: bit width must be even and between 2 and %d, got %d", ErrInvalidArgument, bsgs.MaxBitWidth, d.BitWidth)
	}
	return nil
}

func decodeCoordinate(name, s string) (fr.Element, error) {
	padded := codec.Pad(s)
	if !codec.Validate(padded) {
		return fr.Element{}, fmt.Errorf("%w: %s coordinate %q", ErrInputFormat, name, s)
	}
	e, err := codec.Decode(padded)
	if err != nil {
		return e, fmt.Errorf("%w: %s coordinate: %w", ErrInputFormat, name, err)
	}
	return e, nil
}
