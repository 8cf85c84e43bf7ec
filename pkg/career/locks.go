package career

import (
	"hash/fnv"
	"sync"
)

// subjectLocks serializes writes per subject with a fixed pool of striped
// mutexes. Two subjects may share a stripe, which costs a little contention
// and never correctness; one subject always maps to the same stripe.
type subjectLocks struct {
	stripes []sync.Mutex
}

func newSubjectLocks(n int) *subjectLocks {
	if n <= 0 {
		n = 64
	}
	return &subjectLocks{stripes: make([]sync.Mutex, n)}
}

func (l *subjectLocks) lock(subjectID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(subjectID))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m
}
