package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
)

var _ = Describe("Statistics", func() {
	It("should refuse a hit rate with zero accesses", func() {
		_, err := cache.Statistics{}.HitRate()
		Expect(err).To(MatchError(cache.ErrNoAccesses))

		_, err = cache.KindStats{}.HitRate()
		Expect(err).To(MatchError(cache.ErrNoAccesses))
	})

	It("should compute hits over accesses", func() {
		stats := cache.Statistics{Accesses: 8, Hits: 6}

		rate, err := stats.HitRate()
		Expect(err).NotTo(HaveOccurred())
		Expect(rate).To(Equal(0.75))
		Expect(stats.Misses()).To(Equal(uint64(2)))
	})
})
