package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	creates int
	resets  int
	hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.creates, ", resets: ", s.resets, ", hits: ", s.hits)
}

// CreatePool returns get/release/stats closures over a bounded ring of
// reusable values. Values released past capacity are dropped.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	const capacity = 256
	available := [capacity]*T{}
	count := 0

	lock := sync.Mutex{}
	stats := PoolStats{}

	var get = func() *T {
		lock.Lock()
		defer lock.Unlock()

		if count > 0 {
			count--
			result := available[count]
			available[count] = nil
			stats.hits++
			return result
		}

		stats.creates++
		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		defer lock.Unlock()

		stats.resets++
		if count < capacity {
			available[count] = t
			count++
		}
	}

	var getStats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return stats
	}

	return get, release, getStats
}
