package treesitter

import (
	"bytes"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rubyFromERB recovers the Ruby program embedded in an ERB template.
// The embedded-template grammar splits the file into content and directives;
// every directive's code node is collected in order and joined with newlines,
// which keeps multi-directive constructs (each/do ... end) parseable as one
// Ruby source.
func (p *Parser) rubyFromERB(source []byte) ([]byte, error) {
	tree, err := parse(p.erb, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fragments [][]byte
	collectCode(tree.RootNode(), source, &fragments)
	return bytes.Join(fragments, []byte("\n")), nil
}

// collectCode appends the text of every code node under n, in source order.
func collectCode(n *tree_sitter.Node, source []byte, fragments *[][]byte) {
	if n.Kind() == "code" {
		start, end := n.StartByte(), n.EndByte()
		if int(end) <= len(source) && start <= end {
			*fragments = append(*fragments, source[start:end])
		}
		return
	}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		collectCode(n.Child(i), source, fragments)
	}
}
