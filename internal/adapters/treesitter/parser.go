// Package treesitter implements view parsing using tree-sitter grammars.
// ERB sources pass through the embedded-template grammar to recover the Ruby
// program between the tags; the Ruby grammar then locates render call sites,
// whose arguments are handed to the tracker for dependency extraction.
//
// Two grammars compile in via CGo from the official tree-sitter repos.
package treesitter

import (
	"fmt"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_erb "github.com/tree-sitter/tree-sitter-embedded-template/bindings/go"
	ts_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/Matt-Yorkley/viewdeps/internal/domain/tracker"
)

// viewExtensions are the file extensions the parser accepts. Plain .html
// parses fine under the embedded-template grammar: no directives, no deps.
var viewExtensions = map[string]bool{
	".erb":  true,
	".html": true,
	".rb":   true,
}

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// Parser extracts render dependencies from ERB and Ruby view sources.
type Parser struct {
	erb  *tree_sitter.Language
	ruby *tree_sitter.Language
}

// NewParser creates a parser with both grammars registered.
func NewParser() *Parser {
	return &Parser{
		erb:  langPtr(ts_erb.Language()),
		ruby: langPtr(ts_ruby.Language()),
	}
}

// SupportsExtension returns true if the parser recognizes this file extension.
func (p *Parser) SupportsExtension(ext string) bool {
	return viewExtensions[strings.ToLower(ext)]
}

// ExtractDependencies parses a view source and returns its render
// dependencies as virtual paths. Names ending in .rb are treated as plain
// Ruby; everything else goes through ERB extraction first.
func (p *Parser) ExtractDependencies(name string, source []byte) ([]string, error) {
	rubySource := source
	if !strings.HasSuffix(name, ".rb") {
		extracted, err := p.rubyFromERB(source)
		if err != nil {
			return nil, err
		}
		rubySource = extracted
	}

	groups, err := p.renderCalls(rubySource)
	if err != nil {
		return nil, err
	}
	return tracker.ExtractDependencies(name, groups), nil
}

// parse runs one tree-sitter parse. The caller must Close the returned tree.
func parse(lang *tree_sitter.Language, source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse produced no tree")
	}
	return tree, nil
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if int(start) >= len(source) || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}
