package cache

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// HookPosBeforeAccess marks the point before an access is looked up. The hook
// item is the Access.
var HookPosBeforeAccess = &sim.HookPos{Name: "BeforeAccess"}

// HookPosAfterAccess marks the point after an access has been resolved and
// counted. The hook item is the Access and the detail is its AccessRecord.
var HookPosAfterAccess = &sim.HookPos{Name: "AfterAccess"}

// Engine replays accesses against a unified or split cache and keeps the
// statistics of the run.
type Engine struct {
	*sim.HookableBase

	config Config
	policy Policy

	// One set for a unified cache, instruction and data sets for a split one.
	sets []*Set

	stats Statistics
}

// NewEngine validates config and creates an engine with all lines invalid.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	lines := config.LinesPerSet()

	e := &Engine{
		HookableBase: sim.NewHookableBase(),
		config:       config,
		policy:       NewPolicy(config.Mapping, lines),
	}

	numSets := 1
	if config.Organization == Split {
		numSets = 2
	}

	for i := 0; i < numSets; i++ {
		e.sets = append(e.sets, NewSet(int(lines)))
	}

	return e, nil
}

// MustNewEngine is like NewEngine but panics on an invalid configuration.
func MustNewEngine(config Config) *Engine {
	e, err := NewEngine(config)
	if err != nil {
		panic(fmt.Sprintf("cache: %v", err))
	}

	return e
}

// Config returns the cache configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns cache statistics.
func (e *Engine) Stats() Statistics {
	return e.stats
}

// SetFor returns the set that accesses of the given kind are routed to. Every
// kind other than Instruction is treated as data.
func (e *Engine) SetFor(kind Kind) *Set {
	if e.config.Organization == Split && kind != Instruction {
		return e.sets[1]
	}

	return e.sets[0]
}

// Process performs one access and reports whether it hit.
func (e *Engine) Process(access Access) bool {
	return e.Access(access).Hit
}

// Access performs one access and returns how it was resolved.
func (e *Engine) Access(access Access) AccessRecord {
	if e.NumHooks() > 0 {
		e.InvokeHook(sim.HookCtx{
			Domain: e,
			Pos:    HookPosBeforeAccess,
			Item:   access,
		})
	}

	rec := e.policy.Access(e.SetFor(access.Kind), access.Address)
	rec.Access = access
	e.stats.record(rec)

	if e.NumHooks() > 0 {
		e.InvokeHook(sim.HookCtx{
			Domain: e,
			Pos:    HookPosAfterAccess,
			Item:   access,
			Detail: rec,
		})
	}

	return rec
}

// Reset invalidates every line and clears the statistics.
func (e *Engine) Reset() {
	for _, s := range e.sets {
		s.Reset()
	}
	e.stats = Statistics{}
}
