package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource is an in-memory Source for tests.
type mapSource struct {
	sources map[string]string
	deps    map[string][]string
}

func (m *mapSource) TemplateSource(name string) ([]byte, bool) {
	s, ok := m.sources[name]
	return []byte(s), ok
}

func (m *mapSource) Dependencies(name string) []string {
	return m.deps[name]
}

func TestDigest_Deterministic(t *testing.T) {
	src := &mapSource{
		sources: map[string]string{"posts/index": "<h1>posts</h1>"},
		deps:    map[string][]string{},
	}
	a := New(src).Digest("posts/index")
	b := New(src).Digest("posts/index")
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestDigest_ChangesWithDependency(t *testing.T) {
	src := &mapSource{
		sources: map[string]string{
			"posts/index": "<%= render \"post\" %>",
			"posts/_post": "v1",
		},
		deps: map[string][]string{"posts/index": {"posts/_post"}},
	}
	before := New(src).Digest("posts/index")

	src.sources["posts/_post"] = "v2"
	after := New(src).Digest("posts/index")
	assert.NotEqual(t, before, after, "editing a partial must change the parent digest")
}

func TestDigest_MissingTemplateIsEmpty(t *testing.T) {
	src := &mapSource{sources: map[string]string{}, deps: map[string][]string{}}
	assert.Empty(t, New(src).Digest("nope"))
}

func TestDigest_TransitiveDependency(t *testing.T) {
	src := &mapSource{
		sources: map[string]string{
			"a": "a", "b": "b", "c": "c1",
		},
		deps: map[string][]string{"a": {"b"}, "b": {"c"}},
	}
	before := New(src).Digest("a")
	src.sources["c"] = "c2"
	after := New(src).Digest("a")
	assert.NotEqual(t, before, after)
}

func TestDigest_CycleTerminates(t *testing.T) {
	src := &mapSource{
		sources: map[string]string{"a": "a", "b": "b"},
		deps:    map[string][]string{"a": {"b"}, "b": {"a"}},
	}
	d := New(src)
	assert.NotEmpty(t, d.Digest("a"))
	assert.NotEmpty(t, d.Digest("b"))
}

func TestDigest_DistinctTemplatesDistinctDigests(t *testing.T) {
	src := &mapSource{
		sources: map[string]string{"a": "same", "b": "same", "c": "other"},
		deps:    map[string][]string{"a": {"c"}},
	}
	d := New(src)
	assert.NotEqual(t, d.Digest("a"), d.Digest("b"))
}
