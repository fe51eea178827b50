package cache

// ScopedKeyer prefixes every key from an inner Keyer, giving separate
// namespaces within one cache directory, e.g. one per project:
//
//	k := cache.NewScopedKeyer(nil, "project:brand-kit:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey implements Keyer.
func (k *ScopedKeyer) DocumentKey(inputHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(inputHash, opts)
}

// OutlineKey implements Keyer.
func (k *ScopedKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(docHash, opts)
}
