package cache

// Line is one storage slot of the cache.
type Line struct {
	Valid bool
	Tag   uint32
}

// Set is a fixed-capacity group of lines. For fully-associative placement the
// set also carries the round-robin replacement cursor.
type Set struct {
	lines       []Line
	nextReplace int
}

// NewSet creates a set of capacity invalid lines.
func NewSet(capacity int) *Set {
	return &Set{lines: make([]Line, capacity)}
}

// Capacity returns the number of lines in the set.
func (s *Set) Capacity() int {
	return len(s.lines)
}

// Line returns a copy of the line at index i.
func (s *Set) Line(i int) Line {
	return s.lines[i]
}

// NextReplace returns the line the next fully-associative miss will fill.
func (s *Set) NextReplace() int {
	return s.nextReplace
}

// Reset invalidates all lines and rewinds the replacement cursor.
func (s *Set) Reset() {
	for i := range s.lines {
		s.lines[i] = Line{}
	}
	s.nextReplace = 0
}

// AccessDirect looks up tag in the line at index. On a miss the line is
// overwritten with tag. evicted reports whether a valid line was replaced.
func (s *Set) AccessDirect(tag, index uint32) (hit, evicted bool) {
	line := &s.lines[index]
	if line.Valid && line.Tag == tag {
		return true, false
	}

	evicted = line.Valid
	line.Valid = true
	line.Tag = tag

	return false, evicted
}

// AccessAssociative searches every line for tag. On a miss tag is written
// into the line under the replacement cursor and the cursor advances. The
// cursor never moves on a hit.
func (s *Set) AccessAssociative(tag uint32) (hit, evicted bool) {
	for i := range s.lines {
		if s.lines[i].Valid && s.lines[i].Tag == tag {
			return true, false
		}
	}

	line := &s.lines[s.nextReplace]
	evicted = line.Valid
	line.Valid = true
	line.Tag = tag

	s.nextReplace++
	if s.nextReplace == len(s.lines) {
		s.nextReplace = 0
	}

	return false, evicted
}
