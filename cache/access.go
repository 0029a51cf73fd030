package cache

import "fmt"

// Kind tells whether an access fetches an instruction or touches data.
type Kind int

const (
	// Instruction is an instruction fetch.
	Instruction Kind = iota
	// Data is a load or a store.
	Data
)

func (k Kind) String() string {
	switch k {
	case Instruction:
		return "I"
	case Data:
		return "D"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Access is one memory access taken from a trace.
type Access struct {
	Address uint32
	Kind    Kind
}

// AccessRecord describes how the cache resolved one access.
type AccessRecord struct {
	Access Access
	// Tag is the tag compared against the lines of the target set.
	Tag uint32
	// Index is the line selected by a direct-mapped lookup. It is always 0
	// for fully-associative lookups.
	Index uint32
	// Hit is true if the block was already resident.
	Hit bool
	// Evicted is true if a miss replaced a valid line.
	Evicted bool
}
