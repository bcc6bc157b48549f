// Package tracker extracts static render dependencies from view templates.
// Given the render call sites found in one view's syntax tree, it determines
// which other templates (partials, layouts, renderables) each call depends on
// and returns their virtual paths in source order.
//
// The matcher is deliberately conservative: any call shape it cannot prove
// safe to interpret contributes nothing. A missed dependency only risks a
// stale cache downstream; a fabricated one forces needless invalidation.
package tracker

// NodeKind identifies the closed set of argument shapes the tracker
// understands. Anything the upstream parser cannot map onto one of these
// becomes KindUnknown, which matches no rule.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindStringLit
	KindSymbolLit
	KindHash
	KindMethodCall // receiver.method(...) or method(...) with arguments
	KindClassRef   // SomeClass.new — a renderable class reference
	KindVarRef     // @post, @@cache, $conf — variable with sigil
	KindIdentCall  // bare identifier, statically a no-receiver call
)

// HashEntry is one key/value pair of a hash-literal argument.
type HashEntry struct {
	Key   *Node
	Value *Node
}

// Node is the tracker's view of one syntax tree node. Nodes are built by the
// parser adapter (or tests), read during a single extraction, and never
// mutated or retained.
type Node struct {
	kind    NodeKind
	literal string // string/symbol value
	entries []HashEntry
	method  string // method name for MethodCall/IdentCall
	class   string // class name for ClassRef
	varName string // variable name for VarRef, sigil included
}

// Kind returns the node's variant.
func (n *Node) Kind() NodeKind { return n.kind }

// StringValue returns the literal value of a KindStringLit node.
func (n *Node) StringValue() string { return n.literal }

// SymbolValue returns the literal value of a KindSymbolLit node, without
// the leading colon.
func (n *Node) SymbolValue() string { return n.literal }

// Entries returns the key/value pairs of a KindHash node.
func (n *Node) Entries() []HashEntry { return n.entries }

// MethodName returns the invoked method for KindMethodCall and KindIdentCall.
func (n *Node) MethodName() string { return n.method }

// ClassName returns the referenced class for KindClassRef.
func (n *Node) ClassName() string { return n.class }

// VariableName returns the variable name for KindVarRef, sigil included.
func (n *Node) VariableName() string { return n.varName }

// StringLit builds a static string literal node.
func StringLit(value string) *Node { return &Node{kind: KindStringLit, literal: value} }

// SymbolLit builds a symbol literal node (value without the colon).
func SymbolLit(value string) *Node { return &Node{kind: KindSymbolLit, literal: value} }

// HashLit builds a hash literal node from its entries.
func HashLit(entries ...HashEntry) *Node { return &Node{kind: KindHash, entries: entries} }

// MethodCall builds a method call node.
func MethodCall(method string) *Node { return &Node{kind: KindMethodCall, method: method} }

// IdentCall builds a bare identifier call node.
func IdentCall(name string) *Node { return &Node{kind: KindIdentCall, method: name} }

// ClassRef builds a renderable class reference node.
func ClassRef(class string) *Node { return &Node{kind: KindClassRef, class: class} }

// VarRef builds a variable reference node. The name keeps its sigil.
func VarRef(name string) *Node { return &Node{kind: KindVarRef, varName: name} }

// Unknown builds a node for any shape outside the closed set.
func Unknown() *Node { return &Node{kind: KindUnknown} }
