package cache

import "errors"

// ErrNoAccesses is returned when a hit rate is requested before any access
// has been processed.
var ErrNoAccesses = errors.New("no accesses processed")

// KindStats counts the accesses of one kind.
type KindStats struct {
	Accesses uint64
	Hits     uint64
}

// HitRate returns Hits / Accesses.
func (k KindStats) HitRate() (float64, error) {
	return hitRate(k.Hits, k.Accesses)
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Accesses  uint64
	Hits      uint64
	Evictions uint64

	Instruction KindStats
	Data        KindStats
}

// Misses returns the number of accesses that were not hits.
func (s Statistics) Misses() uint64 {
	return s.Accesses - s.Hits
}

// HitRate returns Hits / Accesses, or ErrNoAccesses if nothing has been
// processed yet.
func (s Statistics) HitRate() (float64, error) {
	return hitRate(s.Hits, s.Accesses)
}

func (s *Statistics) record(rec AccessRecord) {
	kind := &s.Data
	if rec.Access.Kind == Instruction {
		kind = &s.Instruction
	}

	s.Accesses++
	kind.Accesses++

	if rec.Hit {
		s.Hits++
		kind.Hits++
	}

	if rec.Evicted {
		s.Evictions++
	}
}

func hitRate(hits, accesses uint64) (float64, error) {
	if accesses == 0 {
		return 0, ErrNoAccesses
	}

	return float64(hits) / float64(accesses), nil
}
