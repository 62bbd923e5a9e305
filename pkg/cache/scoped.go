package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP API scopes keys per client so one tenant cannot read another's
// artifacts:
//
//	tenant := NewScopedKeyer(NewDefaultKeyer(), "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer defaults to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
