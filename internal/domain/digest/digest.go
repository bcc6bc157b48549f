// Package digest computes recursive content digests over the extracted
// template dependency graph. A template's digest covers its own source plus
// the digests of every template it renders, so editing a deeply nested
// partial changes the digest of every view that reaches it.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Source supplies template code and resolved dependencies by logical name.
// Dependencies must return names that TemplateSource can answer; unresolved
// virtual paths (dynamic renders, missing files) are the caller's to drop.
type Source interface {
	TemplateSource(name string) ([]byte, bool)
	Dependencies(name string) []string
}

// Digester memoizes recursive digests for one immutable snapshot of the
// graph. Not safe for concurrent use; build one per computation pass.
type Digester struct {
	src     Source
	memo    map[string]string
	walking map[string]bool
}

// New creates a Digester over the given source snapshot.
func New(src Source) *Digester {
	return &Digester{
		src:     src,
		memo:    make(map[string]string),
		walking: make(map[string]bool),
	}
}

// Digest returns the hex digest for a template, or "" when the template's
// source is unavailable. Cycles terminate: a template already on the walk
// stack contributes nothing to its own digest.
func (d *Digester) Digest(name string) string {
	if dig, ok := d.memo[name]; ok {
		return dig
	}
	if d.walking[name] {
		return ""
	}

	source, ok := d.src.TemplateSource(name)
	if !ok {
		d.memo[name] = ""
		return ""
	}

	d.walking[name] = true
	h := sha256.New()
	h.Write(source)
	for _, dep := range d.src.Dependencies(name) {
		h.Write([]byte{0})
		h.Write([]byte(d.Digest(dep)))
	}
	delete(d.walking, name)

	dig := hex.EncodeToString(h.Sum(nil))
	d.memo[name] = dig
	return dig
}
