package modelartifacts

import (
	"fmt"
	"sync"
)

// VersionProvider yields the opaque tag identifying the current
// runtime/compiler build, used to namespace the local cache. It never
// fails: absence of a tag is a valid, propagated result.
type VersionProvider interface {
	// VersionTag returns the current tag and whether one is available.
	VersionTag() (string, bool)
}

// RuntimeVersion describes one runtime/compiler build.
type RuntimeVersion struct {
	Version  string
	Revision string
}

// Tag renders the cache-namespace form of the version.
func (v RuntimeVersion) Tag() string {
	return fmt.Sprintf("%s_%s", v.Version, v.Revision)
}

// StaticVersion is a VersionProvider with a fixed tag. The empty string
// reports no tag available.
type StaticVersion string

func (s StaticVersion) VersionTag() (string, bool) {
	return string(s), s != ""
}

// NoVersion is a VersionProvider that never has a tag.
var NoVersion VersionProvider = StaticVersion("")

// MemoizedVersion wraps an expensive tag computation (typically
// native-library introspection) so it runs at most once per process. The
// computation must be idempotent; its result, present or absent, is reused
// for every subsequent call.
func MemoizedVersion(compute func() (string, bool)) VersionProvider {
	return &memoizedVersion{compute: compute}
}

type memoizedVersion struct {
	once    sync.Once
	compute func() (string, bool)
	tag     string
	ok      bool
}

func (m *memoizedVersion) VersionTag() (string, bool) {
	m.once.Do(func() {
		m.tag, m.ok = m.compute()
	})
	return m.tag, m.ok
}
