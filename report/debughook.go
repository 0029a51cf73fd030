package report

import (
	"io"
	"log"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cachesim/cache"
)

// DebugHook prints "<kind> <hex address>" for every access before the cache
// looks it up. The kind is printed as its numeric value (0 for instructions,
// 1 for data).
type DebugHook struct {
	logger *log.Logger
}

// NewDebugHook creates a DebugHook that writes to w.
func NewDebugHook(w io.Writer) *DebugHook {
	return &DebugHook{logger: log.New(w, "", 0)}
}

// Func implements sim.Hook.
func (h *DebugHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosBeforeAccess {
		return
	}

	access, ok := ctx.Item.(cache.Access)
	if !ok {
		return
	}

	h.logger.Printf("%d %x\n", int(access.Kind), access.Address)
}
