// Package report prints the results of a cache simulation.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/cache"
)

// WriteStatistics prints the statistics block in the classic cache_sim
// layout.
func WriteStatistics(w io.Writer, stats cache.Statistics) error {
	_, err := fmt.Fprintf(w,
		"\nCache Statistics\n-----------------\n\nAccesses: %d\nHits:     %d\nHit Rate: %s\n",
		stats.Accesses, stats.Hits, formatRate(stats.HitRate()))

	return err
}

// WriteBreakdown prints the per-kind counters that follow the statistics
// block.
func WriteBreakdown(w io.Writer, stats cache.Statistics) error {
	_, err := fmt.Fprintf(w,
		"\nMisses:    %d\nEvictions: %d\n"+
			"Instruction: %d accesses, %d hits, hit rate %s\n"+
			"Data:        %d accesses, %d hits, hit rate %s\n",
		stats.Misses(), stats.Evictions,
		stats.Instruction.Accesses, stats.Instruction.Hits,
		formatRate(stats.Instruction.HitRate()),
		stats.Data.Accesses, stats.Data.Hits,
		formatRate(stats.Data.HitRate()))

	return err
}

func formatRate(rate float64, err error) string {
	if err != nil {
		return "N/A"
	}

	return fmt.Sprintf("%.4f", rate)
}
