package bsgs

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"babygiant/babyjub"
)

func generator(t testing.TB) twistededwards.PointAffine {
	t.Helper()
	g, err := babyjub.Generator()
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	return g
}

func target(g *twistededwards.PointAffine, p *big.Int) twistededwards.PointProj {
	var b twistededwards.PointAffine
	b.ScalarMul(g, p)
	return babyjub.Normalize(&b)
}

func TestSolveRoundTrip(t *testing.T) {
	g := generator(t)
	rapid.Check(t, func(t *rapid.T) {
		width := 2 * rapid.UintRange(1, 8).Draw(t, "half")
		p := rapid.Uint64Range(0, uint64(1)<<width-1).Draw(t, "p")
		workers := rapid.IntRange(1, 8).Draw(t, "workers")

		b := target(&g, new(big.Int).SetUint64(p))
		got, err := Solve(&g, &b, width, workers)
		if err != nil {
			t.Fatalf("Solve(p=%d, width=%d, workers=%d): %v", p, width, workers, err)
		}
		if got != p {
			t.Fatalf("Solve(width=%d, workers=%d) = %d, want %d", width, workers, got, p)
		}
	})
}

func TestSolveIndependentOfWorkers(t *testing.T) {
	g := generator(t)
	const width = 20
	for _, p := range []uint64{0, 1, 1023, 1024, 65545, 1<<width - 1} {
		b := target(&g, new(big.Int).SetUint64(p))
		for _, workers := range []int{1, 2, 3, 8} {
			got, err := Solve(&g, &b, width, workers)
			require.NoError(t, err, "p=%d workers=%d", p, workers)
			require.Equal(t, p, got, "workers=%d", workers)
		}
	}
}

func TestSolveOutOfRange(t *testing.T) {
	g := generator(t)
	const width = 16

	b := target(&g, big.NewInt(1<<width))
	_, err := Solve(&g, &b, width, 3)
	require.ErrorIs(t, err, ErrNotFound)

	// −G has discrete log r−1
	minusOne := new(big.Int).Sub(babyjub.Order(), big.NewInt(1))
	b = target(&g, minusOne)
	_, err = Solve(&g, &b, width, 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSolveMoreWorkersThanBabySteps(t *testing.T) {
	g := generator(t)
	for p := uint64(0); p < 4; p++ {
		b := target(&g, new(big.Int).SetUint64(p))
		got, err := Solve(&g, &b, 2, 5)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestSolveRejectsBadArguments(t *testing.T) {
	g := generator(t)
	b := target(&g, big.NewInt(3))

	for _, width := range []uint{0, 3, 39, 66} {
		_, err := Solve(&g, &b, width, 1)
		require.ErrorIs(t, err, ErrBitWidth, "width=%d", width)
	}
	for _, workers := range []int{0, -1} {
		_, err := Solve(&g, &b, 8, workers)
		require.ErrorIs(t, err, ErrWorkers)
	}
	_, err := Solve(nil, &b, 8, 1)
	require.Error(t, err)
}

func BenchmarkSolve(b *testing.B) {
	g := generator(b)
	const width = 24
	tgt := target(&g, big.NewInt(1<<width-1))
	for _, workers := range []int{1, 4} {
		b.Run("", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Solve(&g, &tgt, width, workers); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func setBabyStepsHook(t *testing.T, hook func(worker int)) {
	t.Helper()
	babyStepsHook.Store(&hook)
	t.Cleanup(func() { babyStepsHook.Store(nil) })
}

func TestSolveWorkerPanic(t *testing.T) {
	g := generator(t)
	b := target(&g, big.NewInt(77))

	setBabyStepsHook(t, func(worker int) {
		panic("table build failed")
	})
	_, err := Solve(&g, &b, 12, 4)
	require.ErrorIs(t, err, ErrWorkerPanic)
	require.ErrorContains(t, err, "table build failed")
}

func TestSolveSingleWorkerPanic(t *testing.T) {
	g := generator(t)
	// out of range, so no other worker can answer first
	b := target(&g, big.NewInt(1<<12))

	setBabyStepsHook(t, func(worker int) {
		if worker == 1 {
			panic("worker 1")
		}
	})
	got, err := Solve(&g, &b, 12, 3)
	require.ErrorIs(t, err, ErrWorkerPanic)
	require.ErrorContains(t, err, "worker 1")
	require.Zero(t, got)
}
