package evolution

import (
	"github.com/notargets/levelset/band"
	"github.com/notargets/levelset/grid"
	"github.com/notargets/levelset/utils"
)

// Every sweep in this package updates each point independently, so a term
// call parallelizes by partitioning its points disjointly. These wrappers
// run one goroutine per partition; because partitions never overlap, no
// cross-point synchronization is needed. Distinct term calls still
// accumulate into the shared RHS buffer and must remain sequential with
// respect to each other.

// ParallelOverBox splits fb into np slabs along its slowest-varying active
// axis and invokes call once per non-empty slab, concurrently. The first
// error encountered is returned.
func ParallelOverBox(fb grid.Box, np int, call func(sub grid.Box) error) error {
	if fb.Empty() {
		return nil
	}
	if np < 2 {
		return call(fb)
	}
	var (
		axis = fb.Dim - 1
		pm   = utils.NewPartitionMap(np, fb.Extent(axis))
		errs = make([]error, np)
	)
	pm.RunParallel(func(n int) {
		lo, hi := pm.GetBucketRange(n)
		if hi <= lo {
			return
		}
		sub := fb
		sub.Lo[axis] = fb.Lo[axis] + lo
		sub.Hi[axis] = fb.Lo[axis] + hi - 1
		errs[n] = call(sub)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelOverRange chunks a point-list range across np goroutines and
// invokes call once per non-empty chunk, concurrently. The first error
// encountered is returned.
func ParallelOverRange(rng band.Range, np int, call func(sub band.Range) error) error {
	if rng.Empty() {
		return nil
	}
	if np < 2 {
		return call(rng)
	}
	var (
		chunks = rng.Split(np)
		errs   = make([]error, len(chunks))
		pm     = utils.NewPartitionMap(len(chunks), len(chunks))
	)
	pm.RunParallel(func(n int) {
		errs[n] = call(chunks[n])
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
