package skiplist

import "time"

type config struct {
	seed    int64
	seedSet bool
	bloomN  uint
	bloomFP float64
}

// Option configures a SkipList at construction time.
type Option func(c *config)

// WithSeed fixes the seed of the level generator. Without it the
// generator is seeded from the wall clock.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithBloomFilter attaches a bloom filter sized for the expected number
// of distinct keys and the given false-positive rate. Gets for keys that
// were never inserted are then rejected without descending the list.
func WithBloomFilter(expected uint, falsePositiveRate float64) Option {
	return func(c *config) {
		c.bloomN = expected
		c.bloomFP = falsePositiveRate
	}
}

func (c *config) applyDefaults() {
	if !c.seedSet {
		c.seed = time.Now().UnixNano()
	}
}
