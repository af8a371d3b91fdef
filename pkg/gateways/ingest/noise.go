package ingest

import (
	"sync"

	bloomFilter "github.com/bits-and-blooms/bloom/v3"
)

// logDamper suppresses repeat warnings for keys it has already seen, so a
// misbehaving publisher replaying the same bad topic cannot flood the log.
// The filter is cleared once its estimated usage crosses the reset fraction,
// after which suppressed keys may be logged again.
type logDamper struct {
	mu                           sync.Mutex
	filter                       *bloomFilter.BloomFilter
	maximumPercentageFilterUsage float32
}

func newLogDamper(capacity uint, falsePositiveRate float64, maximumPercentageFilterUsage float32) *logDamper {
	return &logDamper{
		filter:                       bloomFilter.NewWithEstimates(capacity, falsePositiveRate),
		maximumPercentageFilterUsage: maximumPercentageFilterUsage,
	}
}

// shouldLog reports whether key has not been seen since the last reset,
// recording it as seen.
func (d *logDamper) shouldLog(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetWhenSaturated()
	if d.filter.TestString(key) {
		return false
	}
	d.filter.AddString(key)
	return true
}

func (d *logDamper) resetWhenSaturated() {
	approximatedFilterSize := d.filter.ApproximatedSize()
	currentFilterUsage := float32(approximatedFilterSize) / float32(d.filter.Cap())
	if currentFilterUsage >= d.maximumPercentageFilterUsage {
		d.filter.ClearAll()
	}
}
