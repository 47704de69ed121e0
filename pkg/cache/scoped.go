package cache

// ScopedKeyer prefixes every key produced by an inner Keyer. The API server
// uses it to keep its entries apart from other users of a shared Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "seatplan:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RosterKey returns the prefixed roster key.
func (k *ScopedKeyer) RosterKey(contentHash, format string) string {
	return k.prefix + k.inner.RosterKey(contentHash, format)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(reportHash, opts)
}
