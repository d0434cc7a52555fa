package usecase

import (
	"hash/fnv"
	"sync"
)

const keyMutexShards = 64

// keyMutex serializes work per string key using a fixed set of shards.
// Two keys hashing to the same shard contend, which is acceptable for
// per-session guess serialization.
type keyMutex struct {
	shards [keyMutexShards]sync.Mutex
}

func (m *keyMutex) Lock(key string) {
	m.shards[m.shard(key)].Lock()
}

func (m *keyMutex) Unlock(key string) {
	m.shards[m.shard(key)].Unlock()
}

func (m *keyMutex) shard(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % keyMutexShards
}
