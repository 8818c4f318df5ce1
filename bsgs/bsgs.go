// Package bsgs solves bounded discrete logarithms on Baby Jubjub with a
// parallel baby-step giant-step search.
//
// The search space [0, m²) with m = 2^(bitWidth/2) is written p = i·m + j.
// Every worker builds a private table of j·A for its own slice of [0, m),
// then walks all m giant steps B − i·m·A against that table. A worker
// therefore only answers when the true j falls in its slice, which keeps
// the memory per worker at O(m/N) while each worker still pays O(m) time.
package bsgs

import (
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"babygiant/logger"
)

// MaxBitWidth keeps i·m + j inside a uint64.
const MaxBitWidth = 64

var (
	ErrNotFound     = errors.New("bsgs: discrete logarithm not found in range")
	ErrBitWidth     = errors.New("bsgs: bit width must be even and between 2 and 64")
	ErrWorkers      = errors.New("bsgs: number of workers must be at least 1")
	ErrWorkerPanic  = errors.New("bsgs: worker panicked")
	errNilPointArgs = errors.New("bsgs: nil point")
)

type result struct {
	worker int
	value  uint64
	found  bool
	err    error
}

// Solve returns p in [0, 2^bitWidth) with p·a = b, using numWorkers
// goroutines.
//
// The first worker that reports a match wins. The others are not cancelled:
// they keep running in the background until their own sweep ends, and their
// results are dropped into the buffered channel unread. That costs CPU after
// Solve has returned, which is accepted in exchange for not synchronizing
// the hot loops.
func Solve(a *twistededwards.PointAffine, b *twistededwards.PointProj, bitWidth uint, numWorkers int) (uint64, error) {
	if a == nil || b == nil {
		return 0, errNilPointArgs
	}
	if bitWidth < 2 || bitWidth > MaxBitWidth || bitWidth%2 != 0 {
		return 0, fmt.Errorf("%w: got %d", ErrBitWidth, bitWidth)
	}
	if numWorkers < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrWorkers, numWorkers)
	}

	m := uint64(1) << (bitWidth / 2)
	n := uint64(numWorkers)
	chunk := m / n

	// giant step: −m·A, kept projective like γ
	var am twistededwards.PointAffine
	am.ScalarMul(a, new(big.Int).SetUint64(m))
	am.Neg(&am)
	var giant twistededwards.PointProj
	giant.FromAffine(&am)

	log := logger.Logger().With().Str("component", "bsgs").Logger()
	log.Debug().
		Uint("bitWidth", bitWidth).
		Uint64("m", m).
		Uint64("chunk", chunk).
		Int("workers", numWorkers).
		Msg("starting baby-step giant-step search")

	results := make(chan result, numWorkers)
	for idx := uint64(0); idx < n; idx++ {
		start := idx * chunk
		end := start + chunk
		if idx == n-1 {
			end = m
		}
		w := &worker{
			id:    int(idx),
			start: start,
			end:   end,
			m:     m,
			a:     *a,
			b:     *b,
			giant: giant,
		}
		go func() {
			results <- w.run()
		}()
	}

	for i := 0; i < numWorkers; i++ {
		res := <-results
		if res.err != nil {
			return 0, res.err
		}
		if res.found {
			log.Debug().Int("worker", res.worker).Uint64("plaintext", res.value).Msg("discrete logarithm found")
			return res.value, nil
		}
	}
	return 0, ErrNotFound
}

// babyStepsHook, when set, runs at the start of every table build.
var babyStepsHook atomic.Pointer[func(worker int)]

// worker owns one baby-step slice [start, end) and its lookup table.
type worker struct {
	id         int
	start, end uint64
	m          uint64
	a          twistededwards.PointAffine
	b          twistededwards.PointProj
	giant      twistededwards.PointProj
}

func (w *worker) run() (res result) {
	res.worker = w.id
	defer func() {
		if r := recover(); r != nil {
			res = result{worker: w.id, err: fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, w.id, r)}
		}
	}()

	log := logger.Logger().With().Str("component", "bsgs").Int("worker", w.id).Logger()
	t0 := time.Now()

	table := w.babySteps()
	res.value, res.found = w.giantSteps(table)

	log.Debug().
		Uint64("start", w.start).
		Uint64("end", w.end).
		Bool("found", res.found).
		Dur("took", time.Since(t0)).
		Msg("worker done")
	return res
}

// babySteps maps start·A + k·A to start + k for every index of the slice.
// Points are affine: projective coordinates are not unique and would break
// map equality.
func (w *worker) babySteps() map[twistededwards.PointAffine]uint64 {
	if hook := babyStepsHook.Load(); hook != nil {
		(*hook)(w.id)
	}
	table := make(map[twistededwards.PointAffine]uint64, w.end-w.start)
	var v twistededwards.PointAffine
	v.ScalarMul(&w.a, new(big.Int).SetUint64(w.start))
	for j := w.start; j < w.end; j++ {
		table[v] = j
		v.Add(&v, &w.a)
	}
	return table
}

// giantSteps walks γ = B − i·m·A for i in [0, m) and looks each γ up in
// the worker's own table.
func (w *worker) giantSteps(table map[twistededwards.PointAffine]uint64) (uint64, bool) {
	if len(table) == 0 {
		return 0, false
	}
	gamma := w.b
	var key twistededwards.PointAffine
	for i := uint64(0); i < w.m; i++ {
		key.FromProj(&gamma)
		if j, ok := table[key]; ok {
			return i*w.m + j, true
		}
		gamma.Add(&gamma, &w.giant)
	}
	return 0, false
}
