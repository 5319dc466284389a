package utils

import (
	"context"
	"runtime"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ParallelDegree picks the worker count for maxIndex items: requested if
// positive, otherwise GOMAXPROCS, never more than the number of items.
func ParallelDegree(requested, maxIndex int) (np int) {
	np = requested
	if np <= 0 {
		np = runtime.GOMAXPROCS(0)
	}
	if np > maxIndex {
		np = maxIndex
	}
	if np < 1 {
		np = 1
	}
	return
}

// RunPartitions calls fn once per non-empty partition, each on its own
// goroutine, and returns the error of the lowest numbered failing partition.
// The context passed to fn is cancelled as soon as any partition fails.
func (pm *PartitionMap) RunPartitions(ctx context.Context,
	fn func(ctx context.Context, bn, kMin, kMax int) error) (err error) {
	var (
		wg     sync.WaitGroup
		errs   = make([]error, pm.ParallelDegree)
		cctx   context.Context
		cancel context.CancelFunc
	)
	cctx, cancel = context.WithCancel(ctx)
	defer cancel()
	for np := 0; np < pm.ParallelDegree; np++ {
		if pm.GetBucketDimension(np) <= 0 {
			continue
		}
		kMin, kMax := pm.GetBucketRange(np)
		wg.Add(1)
		go func(np, kMin, kMax int) {
			defer wg.Done()
			if errs[np] = fn(cctx, np, kMin, kMax); errs[np] != nil {
				cancel()
			}
		}(np, kMin, kMax)
	}
	wg.Wait()
	// Prefer a real failure over the cancellations it triggered in siblings
	for _, e := range errs {
		if e != nil && e != context.Canceled {
			return e
		}
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}
