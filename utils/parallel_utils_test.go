package utils

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Partitions tile [0, MaxIndex) without gaps
		pm := NewPartitionMap(7, 100)
		var next int
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			assert.Equal(t, next, kMin)
			next = kMax
		}
		assert.Equal(t, 100, next)
	}
	assert.Equal(t, 1, ParallelDegree(0, 0))
	assert.Equal(t, 3, ParallelDegree(8, 3))
	assert.Equal(t, 4, ParallelDegree(4, 100))
}

func TestRunPartitions(t *testing.T) {
	{ // Every index is visited exactly once
		var (
			pm      = NewPartitionMap(5, 103)
			visited = make([]int32, 103)
		)
		err := pm.RunPartitions(context.Background(), func(ctx context.Context, bn, kMin, kMax int) error {
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&visited[k], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for k := range visited {
			assert.Equal(t, int32(1), visited[k])
		}
	}
	{ // A failure is reported and cancels the other partitions
		pm := NewPartitionMap(4, 40)
		err := pm.RunPartitions(context.Background(), func(ctx context.Context, bn, kMin, kMax int) error {
			if bn == 2 {
				return fmt.Errorf("partition %d failed", bn)
			}
			<-ctx.Done()
			return ctx.Err()
		})
		require.Error(t, err)
		assert.Equal(t, "partition 2 failed", err.Error())
	}
	{ // A cancelled parent context is propagated
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		pm := NewPartitionMap(2, 10)
		err := pm.RunPartitions(ctx, func(ctx context.Context, bn, kMin, kMax int) error {
			return ctx.Err()
		})
		assert.ErrorIs(t, err, context.Canceled)
	}
}
