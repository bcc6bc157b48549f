package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplate_LocalNameFromAs(t *testing.T) {
	tests := []struct {
		name string
		as   *Node
		want string
	}{
		{"symbol literal", SymbolLit("item"), "item"},
		{"string literal", StringLit("entry"), "entry"},
		{"dynamic as falls back to basename", MethodCall("pick"), "foo"},
		{"missing as falls back to basename", nil, "foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := map[string]*Node{
				keyPartial:    StringLit("foo"),
				keyCollection: VarRef("@posts"),
			}
			if tt.as != nil {
				opts[keyAs] = tt.as
			}
			res, ok := resolveTemplate(opts, keyPartial, "app/views/posts")
			require.True(t, ok)
			assert.Equal(t, tt.want, res.localName)
		})
	}
}

func TestResolveTemplate_LocalNameStripsMarkerAndExtensions(t *testing.T) {
	opts := map[string]*Node{
		keyPartial: StringLit("shared/_item.html.erb"),
		keyObject:  VarRef("@post"),
	}
	res, ok := resolveTemplate(opts, keyPartial, "app/views/posts")
	require.True(t, ok)
	assert.Equal(t, "item", res.localName)
}

func TestResolveTemplate_DynamicFlagsObjectTemplate(t *testing.T) {
	opts := map[string]*Node{keyPartial: VarRef("@post")}
	res, ok := resolveTemplate(opts, keyPartial, "app/views/posts")
	require.True(t, ok)
	assert.True(t, res.dynamic)
	assert.Equal(t, "posts/post", res.path)
	assert.Equal(t, "post", res.localName)
}

func TestResolveTemplate_VariableSigilsStripped(t *testing.T) {
	tests := []struct {
		ref  string
		path string
	}{
		{"@post", "posts/post"},
		{"@@post", "posts/post"},
		{"$post", "posts/post"},
	}
	for _, tt := range tests {
		opts := map[string]*Node{keyPartial: VarRef(tt.ref)}
		res, ok := resolveTemplate(opts, keyPartial, "")
		require.True(t, ok, tt.ref)
		assert.Equal(t, tt.path, res.path, tt.ref)
	}
}

func TestResolveTemplate_RenderableClassName(t *testing.T) {
	opts := map[string]*Node{keyRenderable: ClassRef("InlineComment")}
	res, ok := resolveTemplate(opts, keyRenderable, "app/views/posts")
	require.True(t, ok)
	assert.Equal(t, "InlineComment", res.path)
	assert.False(t, res.dynamic)
}

func TestResolveTemplate_EmptyClassNameRejected(t *testing.T) {
	opts := map[string]*Node{keyRenderable: ClassRef("")}
	_, ok := resolveTemplate(opts, keyRenderable, "")
	assert.False(t, ok)
}

func TestVirtualPath(t *testing.T) {
	tests := []struct {
		renderType string
		path       string
		want       string
	}{
		{keyPartial, "app/views/posts/foo", "app/views/posts/_foo"},
		{keyPartial, "foo", "_foo"},
		{keyLayout, "bar", "_bar"},
		{keyLayout, "layouts/admin", "layouts/_admin"},
		{keyTemplate, "users/show", "users/show"},
		{keyRenderable, "Widget", "Widget"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, virtualPath(tt.renderType, tt.path))
	}
}
