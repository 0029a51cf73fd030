package cache

// A Policy resolves an address against one set, updating the set on a miss.
type Policy interface {
	Mapping() Mapping
	Access(set *Set, addr uint32) AccessRecord
}

// NewPolicy returns the policy for a mapping over sets of the given number of
// lines.
func NewPolicy(mapping Mapping, lines uint32) Policy {
	geometry := NewGeometry(lines)

	if mapping == FullyAssociative {
		return fullyAssociativePolicy{geometry: geometry}
	}

	return directMappedPolicy{geometry: geometry}
}

type directMappedPolicy struct {
	geometry Geometry
}

func (p directMappedPolicy) Mapping() Mapping {
	return DirectMapped
}

func (p directMappedPolicy) Access(set *Set, addr uint32) AccessRecord {
	tag, index := p.geometry.DirectMapped(addr)
	hit, evicted := set.AccessDirect(tag, index)

	return AccessRecord{
		Tag:     tag,
		Index:   index,
		Hit:     hit,
		Evicted: evicted,
	}
}

type fullyAssociativePolicy struct {
	geometry Geometry
}

func (p fullyAssociativePolicy) Mapping() Mapping {
	return FullyAssociative
}

func (p fullyAssociativePolicy) Access(set *Set, addr uint32) AccessRecord {
	tag := p.geometry.FullyAssociative(addr)
	hit, evicted := set.AccessAssociative(tag)

	return AccessRecord{
		Tag:     tag,
		Hit:     hit,
		Evicted: evicted,
	}
}
