package bls12381msm

import (
	"runtime"
	"sync"

	"github.com/msmlabs/bls12381msm/internal/curvebackend"
)

// MulVecMT is MulVec's multi-threaded sibling: it partitions points and
// scalars into contiguous chunks, runs MulVec independently over each
// chunk across a worker pool sized to GOMAXPROCS, and sums the partial
// results. It never touches the packed lookup tables MulVec builds
// internally, only their final per-chunk output, so it adds no
// synchronization to the hot arithmetic path.
func MulVecMT(out *curvebackend.G1Jac, points []curvebackend.G1Affine, scalars []curvebackend.Fr, bucketOverride int) error {
	if len(points) != len(scalars) {
		return ErrLengthMismatch
	}
	if bucketOverride != 0 && (bucketOverride < minBucketWidth || bucketOverride > maxBucketWidth) {
		return ErrInvalidBucketWidth
	}

	n := len(points)
	if n == 0 {
		*out = curvebackend.Identity()
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	numChunks := (n + chunk - 1) / chunk

	partials := make([]curvebackend.G1Jac, numChunks)
	errs := make([]error, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		lo := c * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(c, lo, hi int) {
			defer wg.Done()
			errs[c] = MulVec(&partials[c], points[lo:hi], scalars[lo:hi], bucketOverride)
		}(c, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	total := curvebackend.Identity()
	for _, p := range partials {
		total.AddAssign(&p)
	}
	*out = total
	return nil
}
