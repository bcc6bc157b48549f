package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Matt-Yorkley/viewdeps/internal/domain/tracker"
)

// renderMethods are the invocations treated as render call sites.
var renderMethods = map[string]bool{
	"render":           true,
	"render_to_string": true,
}

// renderCalls parses Ruby source and returns every render call site grouped
// by method name. Groups are ordered by first occurrence and calls within a
// group follow source order, so the tracker's flattened output matches the
// source.
func (p *Parser) renderCalls(source []byte) ([]tracker.CallGroup, error) {
	tree, err := parse(p.ruby, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var groups []tracker.CallGroup
	byMethod := make(map[string]int)
	collectRenderCalls(tree.RootNode(), source, &groups, byMethod)
	return groups, nil
}

// collectRenderCalls walks the AST depth-first, appending render call sites
// as it finds them. Nested calls inside render arguments are visited too.
func collectRenderCalls(n *tree_sitter.Node, source []byte, groups *[]tracker.CallGroup, byMethod map[string]int) {
	if method, args, ok := renderCallSite(n, source); ok {
		idx, seen := byMethod[method]
		if !seen {
			idx = len(*groups)
			byMethod[method] = idx
			*groups = append(*groups, tracker.CallGroup{Method: method})
		}
		(*groups)[idx].Calls = append((*groups)[idx].Calls, tracker.RenderCall{Args: args})
	}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		collectRenderCalls(n.Child(i), source, groups, byMethod)
	}
}

// renderCallSite reports whether n is a receiverless render invocation and,
// if so, converts its argument list into tracker nodes.
func renderCallSite(n *tree_sitter.Node, source []byte) (string, []*tracker.Node, bool) {
	if n.Kind() != "call" {
		return "", nil, false
	}
	if recv := n.ChildByFieldName("receiver"); recv != nil && recv.Kind() != "self" {
		return "", nil, false
	}
	methodNode := n.ChildByFieldName("method")
	if methodNode == nil || methodNode.Kind() != "identifier" {
		return "", nil, false
	}
	method := nodeText(methodNode, source)
	if !renderMethods[method] {
		return "", nil, false
	}

	argList := n.ChildByFieldName("arguments")
	if argList == nil {
		return method, nil, true
	}
	return method, convertArguments(argList, source), true
}

// convertArguments maps an argument_list into tracker nodes. Trailing bare
// keyword arguments (pair nodes) collapse into one synthesized hash, which
// is how Ruby itself groups them.
func convertArguments(argList *tree_sitter.Node, source []byte) []*tracker.Node {
	var args []*tracker.Node
	var trailingPairs []tracker.HashEntry
	for i := uint(0); i < uint(argList.NamedChildCount()); i++ {
		child := argList.NamedChild(i)
		if child.Kind() == "pair" {
			trailingPairs = append(trailingPairs, convertPair(child, source))
			continue
		}
		// A positional after keyword arguments is not valid Ruby; if the
		// grammar produced it anyway, pass the shapes through and let the
		// tracker reject the call.
		if len(trailingPairs) > 0 {
			args = append(args, tracker.HashLit(trailingPairs...))
			trailingPairs = nil
		}
		args = append(args, convertNode(child, source))
	}
	if len(trailingPairs) > 0 {
		args = append(args, tracker.HashLit(trailingPairs...))
	}
	return args
}

// convertPair maps a hash pair, preserving unresolvable keys as Unknown so
// the tracker can reject the whole call.
func convertPair(pair *tree_sitter.Node, source []byte) tracker.HashEntry {
	entry := tracker.HashEntry{Key: tracker.Unknown(), Value: tracker.Unknown()}
	if key := pair.ChildByFieldName("key"); key != nil {
		switch key.Kind() {
		case "hash_key_symbol":
			entry.Key = tracker.SymbolLit(nodeText(key, source))
		case "simple_symbol":
			entry.Key = tracker.SymbolLit(symbolValue(key, source))
		default:
			// string keys, interpolated keys, splats: not statically a symbol
		}
	}
	if value := pair.ChildByFieldName("value"); value != nil {
		entry.Value = convertNode(value, source)
	}
	return entry
}

// convertNode maps one Ruby AST node onto the tracker's closed variant set.
// Shapes outside the set become Unknown and match no extraction rule.
func convertNode(n *tree_sitter.Node, source []byte) *tracker.Node {
	switch n.Kind() {
	case "string":
		if value, ok := staticString(n, source); ok {
			return tracker.StringLit(value)
		}
		return tracker.Unknown()

	case "simple_symbol":
		return tracker.SymbolLit(symbolValue(n, source))

	case "hash":
		var entries []tracker.HashEntry
		for i := uint(0); i < uint(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Kind() != "pair" {
				// splat or double-splat inside the hash: no static keys
				entries = append(entries, tracker.HashEntry{Key: tracker.Unknown(), Value: tracker.Unknown()})
				continue
			}
			entries = append(entries, convertPair(child, source))
		}
		return tracker.HashLit(entries...)

	case "instance_variable", "class_variable", "global_variable":
		return tracker.VarRef(nodeText(n, source))

	case "identifier":
		// Statically indistinguishable from a local variable; treat as a
		// receiverless call and use its name.
		return tracker.IdentCall(nodeText(n, source))

	case "call":
		recv := n.ChildByFieldName("receiver")
		method := n.ChildByFieldName("method")
		if method == nil {
			return tracker.Unknown()
		}
		methodName := nodeText(method, source)
		if recv != nil && methodName == "new" &&
			(recv.Kind() == "constant" || recv.Kind() == "scope_resolution") {
			return tracker.ClassRef(nodeText(recv, source))
		}
		return tracker.MethodCall(methodName)

	default:
		return tracker.Unknown()
	}
}

// staticString extracts the value of a string literal with no interpolation.
func staticString(n *tree_sitter.Node, source []byte) (string, bool) {
	value := ""
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "string_content":
			value += nodeText(child, source)
		case "interpolation", "escape_sequence":
			return "", false
		}
	}
	return value, true
}

// symbolValue strips the leading colon from a simple_symbol.
func symbolValue(n *tree_sitter.Node, source []byte) string {
	text := nodeText(n, source)
	if len(text) > 0 && text[0] == ':' {
		return text[1:]
	}
	return text
}
