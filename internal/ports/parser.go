// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Parser turns one view source into its static render dependencies.
// The concrete implementation (tree-sitter over ERB and Ruby) lives in
// internal/adapters/treesitter.
type Parser interface {
	// ExtractDependencies parses a view and returns the virtual paths of
	// every template it statically renders, in source order, duplicates
	// included. name is the view's logical name (e.g. "posts/index") and
	// supplies the directory for relative partial resolution. Invocations
	// the matcher cannot interpret contribute nothing; only parse-level
	// failures surface as errors.
	ExtractDependencies(name string, source []byte) ([]string, error)

	// SupportsExtension returns true if the parser can handle files with
	// this extension (e.g. ".erb"). Extension includes the leading dot.
	SupportsExtension(ext string) bool
}
