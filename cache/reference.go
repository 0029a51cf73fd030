package cache

import (
	"errors"
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// ErrDivergence is returned when the engine and the reference model disagree
// on an access.
var ErrDivergence = errors.New("cache model divergence")

// ReferenceModel replays accesses on Akita cache directories. A direct-mapped
// region is a directory with one way per set, a fully-associative region is a
// directory with a single set. Both use FIFO victim selection.
type ReferenceModel struct {
	config      Config
	directories []*akitacache.DirectoryImpl
	checked     uint64
}

// NewReferenceModel builds the Akita directories for config.
func NewReferenceModel(config Config) (*ReferenceModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	lines := int(config.LinesPerSet())
	numSets, numWays := lines, 1
	if config.Mapping == FullyAssociative {
		numSets, numWays = 1, lines
	}

	m := &ReferenceModel{config: config}

	regions := 1
	if config.Organization == Split {
		regions = 2
	}

	for i := 0; i < regions; i++ {
		m.directories = append(m.directories, akitacache.NewDirectory(
			numSets,
			numWays,
			BlockSize,
			newFIFOVictimFinder(),
		))
	}

	return m, nil
}

// Process performs one access and reports whether it hit.
func (m *ReferenceModel) Process(access Access) bool {
	dir := m.directories[0]
	if m.config.Organization == Split && access.Kind == Data {
		dir = m.directories[1]
	}

	blockAddr := uint64(access.Address) &^ uint64(BlockSize-1)

	block := dir.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		return true
	}

	victim := dir.FindVictim(blockAddr)
	victim.Tag = blockAddr
	victim.IsValid = true

	return false
}

// Check replays rec.Access and fails if the reference verdict differs.
func (m *ReferenceModel) Check(rec AccessRecord) error {
	m.checked++

	hit := m.Process(rec.Access)
	if hit != rec.Hit {
		return fmt.Errorf("%w: access %d (%s 0x%x): engine hit=%t, reference hit=%t",
			ErrDivergence, m.checked, rec.Access.Kind, rec.Access.Address, rec.Hit, hit)
	}

	return nil
}

// fifoVictimFinder evicts the blocks of a set in way order, one per miss.
type fifoVictimFinder struct {
	next map[int]int
}

func newFIFOVictimFinder() *fifoVictimFinder {
	return &fifoVictimFinder{next: make(map[int]int)}
}

// FindVictim returns the block under the set's cursor and advances it.
func (f *fifoVictimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	setID := set.Blocks[0].SetID

	way := f.next[setID]
	f.next[setID] = (way + 1) % len(set.Blocks)

	return set.Blocks[way]
}
