package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matt-Yorkley/viewdeps/internal/ports"
)

// stubParser reads "render: NAME" lines so app tests don't depend on the
// tree-sitter build.
type stubParser struct{}

func (stubParser) ExtractDependencies(name string, source []byte) ([]string, error) {
	var deps []string
	for _, line := range strings.Split(string(source), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "render:"); ok {
			deps = append(deps, strings.TrimSpace(rest))
		}
	}
	return deps, nil
}

func (stubParser) SupportsExtension(ext string) bool {
	return ext == ".erb" || ext == ".html"
}

// newTestApp builds an App over a temp project with the given views.
// Keys are views-relative paths, values are file contents.
func newTestApp(t *testing.T, views map[string]string) *App {
	t.Helper()
	root := t.TempDir()
	for rel, content := range views {
		path := filepath.Join(root, "app", "views", rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	a, err := New(Config{ProjectRoot: root, Parser: stubParser{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// writeView rewrites one view file with a bumped mtime so rescans notice.
func writeView(t *testing.T, a *App, rel, content string) {
	t.Helper()
	path := filepath.Join(a.viewsPath(), rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))
}

func TestScan_DiscoversTemplatesAndDeps(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post\nrender: posts/_post",
		"posts/_post.html.erb": "<p>post</p>",
		"notes.txt":            "not a view",
	})

	result, err := a.Scan()
	require.NoError(t, err)
	assert.Equal(t, 2, result.TemplateCount)
	assert.Equal(t, 2, result.DepCount)

	deps, ok := a.Dependencies("posts/index")
	require.True(t, ok)
	assert.Equal(t, []string{"posts/_post", "posts/_post"}, deps, "duplicates preserved")
}

func TestScan_PersistsIndex(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	reloaded, err := a.Store.LoadIndex(a.ProjectID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Contains(t, reloaded.Templates, "posts/index")
}

func TestScan_IncrementalReuse(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
		"posts/_post.html.erb": "<p></p>",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	second, err := a.Scan()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Reused, "unchanged templates reuse stored entries")
}

func TestScan_DigestFollowsDependencyEdit(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
		"posts/_post.html.erb": "v1",
	})
	_, err := a.Scan()
	require.NoError(t, err)
	before, ok := a.Digest("posts/index")
	require.True(t, ok)
	require.NotEmpty(t, before)

	writeView(t, a, "posts/_post.html.erb", "v2")
	_, err = a.Scan()
	require.NoError(t, err)

	after, _ := a.Digest("posts/index")
	assert.NotEqual(t, before, after, "parent digest must follow partial edits")
}

func TestScan_UnresolvedDepsKeptInListSkippedInDigest(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_missing",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	deps, _ := a.Dependencies("posts/index")
	assert.Equal(t, []string{"posts/_missing"}, deps)

	dig, _ := a.Digest("posts/index")
	assert.NotEmpty(t, dig, "missing dependency must not break digesting")
}

func TestGraph_SortedEdges(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"users/show.html.erb":  "render: users/_bio",
		"posts/index.html.erb": "render: posts/_post",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	assert.Equal(t, []Edge{
		{From: "posts/index", To: "posts/_post"},
		{From: "users/show", To: "users/_bio"},
	}, a.Graph())
}

func TestExtractView_ByPath(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
	})

	name, deps, err := a.ExtractView(filepath.Join("app", "views", "posts", "index.html.erb"))
	require.NoError(t, err)
	assert.Equal(t, "posts/index", name)
	assert.Equal(t, []string{"posts/_post"}, deps)
}

func TestWipe_ClearsStoreAndMemory(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	require.NoError(t, a.Wipe())

	_, ok := a.Dependencies("posts/index")
	assert.False(t, ok)

	idx, err := a.Store.LoadIndex(a.ProjectID)
	require.NoError(t, err)
	assert.Nil(t, idx)
}

func TestOnViewChanged_ReportsDigestRipple(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
		"posts/_post.html.erb": "v1",
		"users/show.html.erb":  "unrelated",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	partial := filepath.Join(a.viewsPath(), "posts", "_post.html.erb")
	writeView(t, a, filepath.Join("posts", "_post.html.erb"), "v2")

	changed := a.onViewChanged(partial)
	assert.Equal(t, []string{"posts/_post", "posts/index"}, changed)
}

func TestOnViewChanged_RemovalDropsTemplate(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"posts/index.html.erb": "render: posts/_post",
		"posts/_post.html.erb": "v1",
	})
	_, err := a.Scan()
	require.NoError(t, err)

	partial := filepath.Join(a.viewsPath(), "posts", "_post.html.erb")
	require.NoError(t, os.Remove(partial))

	changed := a.onViewChanged(partial)
	assert.Contains(t, changed, "posts/_post")
	assert.Contains(t, changed, "posts/index")

	_, ok := a.Dependencies("posts/_post")
	assert.False(t, ok)
}

func TestTemplateName(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"posts/index.html.erb", "posts/index"},
		{"posts/_post.html.erb", "posts/_post"},
		{"layouts/application.html.erb", "layouts/application"},
		{"home.erb", "home"},
		{"admin/users/show.json.erb", "admin/users/show"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, templateName(tt.rel), tt.rel)
	}
}

var _ ports.Parser = stubParser{}
