package config

// CacheConfig tunes the view-tagged response cache on the public read
// endpoints (availability grid, venue page).  Entries live until TTL or
// until a booking mutation invalidates the view they were tagged with,
// whichever comes first.
type CacheConfig struct {
	Enabled      bool
	TTL          string // parsed with time.ParseDuration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the response cache settings from environment
// variables, with defaults suitable for a single venue.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envStr("CACHE_TTL", "30s"),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
