// SPDX-License-Identifier: MPL-2.0

package envoverlay

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// entry pairs the key's original casing with its value. A nil Value marks
// an explicit deletion, so a child overlay can hide a key its parent (or
// the host environment) set.
type entry struct {
	key   string
	value *string
}

// Overlay is a scoped map of environment variables. Overlays chain to a
// parent: Environ walks the chain root-to-leaf so a child's entries take
// precedence over its parent's.
type Overlay struct {
	mu     sync.RWMutex
	parent *Overlay
	vars   map[string]entry

	// caseInsensitive controls key normalization for lookups and merges.
	// It defaults to true on Windows and false elsewhere.
	caseInsensitive bool

	// includeParentEnv is the default WithEnv installs for callers that
	// resolve this Overlay from a context via FromContext and call
	// Environ without an explicit override.
	includeParentEnv bool
}

// New creates an empty root Overlay.
func New() *Overlay {
	return &Overlay{
		vars:            make(map[string]entry),
		caseInsensitive: runtime.GOOS == "windows",
	}
}

// Child creates a new Overlay layered on top of o; entries set on the
// child shadow same-named entries in o without mutating it.
func (o *Overlay) Child() *Overlay {
	return &Overlay{
		parent:          o,
		vars:            make(map[string]entry),
		caseInsensitive: o.caseInsensitive,
	}
}

// WithCaseInsensitive overrides case sensitivity for key lookups on this
// overlay (and any Child it produces afterward). Tests use this to pin
// behavior independent of the host OS.
func (o *Overlay) WithCaseInsensitive(v bool) *Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.caseInsensitive = v
	return o
}

func (o *Overlay) normalize(key string) string {
	if o.caseInsensitive {
		return strings.ToUpper(key)
	}
	return key
}

// Set assigns key=value on this overlay.
func (o *Overlay) Set(key, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.vars[o.normalize(key)] = entry{key: key, value: &value}
}

// Delete marks key as explicitly removed on this overlay, hiding any
// value a parent overlay (or the host environment) would otherwise
// contribute: a nil value means "delete this key".
func (o *Overlay) Delete(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.vars[o.normalize(key)] = entry{key: key, value: nil}
}

// Lookup resolves key through the overlay chain, returning the nearest
// (most specific) entry's value. ok is false if no overlay in the chain
// mentions the key at all (as opposed to explicitly deleting it, which
// resolves to "", false too — a deleted key is indistinguishable from an
// absent one to a caller that doesn't inherit the parent environment).
func (o *Overlay) Lookup(key string) (string, bool) {
	norm := o.normalize(key)
	for cur := o; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		e, found := cur.vars[norm]
		cur.mu.RUnlock()
		if found {
			if e.value == nil {
				return "", false
			}
			return *e.value, true
		}
	}
	return "", false
}

// IncludeParentEnv reports the default installed by the nearest WithEnv
// call that produced this Overlay, for callers of Environ0.
func (o *Overlay) IncludeParentEnv() bool { return o.includeParentEnv }

// Environ0 calls Environ with the overlay's own IncludeParentEnv default.
func (o *Overlay) Environ0() []string { return o.Environ(o.includeParentEnv) }

// Environ flattens the overlay chain into "KEY=VALUE" pairs suitable for
// exec.Cmd.Env. When includeParentEnv is true, the host process's own
// environment (os.Environ) seeds the result before any overlay entry is
// applied, so overlay Set/Delete calls still take precedence over it.
func (o *Overlay) Environ(includeParentEnv bool) []string {
	merged := make(map[string]entry)

	if includeParentEnv {
		for _, kv := range os.Environ() {
			idx := strings.IndexByte(kv, '=')
			if idx < 0 {
				continue
			}
			key, val := kv[:idx], kv[idx+1:]
			merged[o.normalize(key)] = entry{key: key, value: &val}
		}
	}

	var chain []*Overlay
	for cur := o; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		cur.mu.RLock()
		for norm, e := range cur.vars {
			merged[norm] = e
		}
		cur.mu.RUnlock()
	}

	out := make([]string, 0, len(merged))
	for _, e := range merged {
		if e.value == nil {
			continue
		}
		out = append(out, e.key+"="+*e.value)
	}
	return out
}
