package tracker

// Option keys the tracker knows how to reason about. A hash containing any
// key outside this set signals a usage the matcher cannot interpret, so the
// whole invocation is dropped (fail closed).
const (
	keyPartial        = "partial"
	keyTemplate       = "template"
	keyLayout         = "layout"
	keyFormats        = "formats"
	keyLocals         = "locals"
	keyObject         = "object"
	keyCollection     = "collection"
	keyAs             = "as"
	keyStatus         = "status"
	keyContentType    = "content_type"
	keyLocation       = "location"
	keySpacerTemplate = "spacer_template"

	// keyRenderable is synthesized for positional class references
	// (render Widget.new); it never appears in a user-written hash.
	keyRenderable = "renderable"
)

var knownKeys = map[string]bool{
	keyPartial:        true,
	keyTemplate:       true,
	keyLayout:         true,
	keyFormats:        true,
	keyLocals:         true,
	keyObject:         true,
	keyCollection:     true,
	keyAs:             true,
	keyStatus:         true,
	keyContentType:    true,
	keyLocation:       true,
	keySpacerTemplate: true,
	keyRenderable:     true,
}

// renderTypeKeys is the priority order for selecting the render type when a
// hash names more than one.
var renderTypeKeys = [...]string{keyPartial, keyTemplate, keyLayout}

// normalizeArguments converts a render call's positional arguments into a
// canonical options mapping. Supported shapes:
//
//	render Widget.new            -> {renderable: <ref>}
//	render "foo"                 -> {partial: "foo"}
//	render "foo", locals         -> {partial: "foo", locals: <opaque>}
//	render partial: "foo", ...   -> the hash itself, symbol-keyed
//
// Any other shape (zero args, three or more, a hash with extra positionals,
// a hash with a key that is not a symbol literal) is rejected.
func normalizeArguments(args []*Node) (map[string]*Node, bool) {
	switch {
	case (len(args) == 1 || len(args) == 2) && args[0].Kind() != KindHash:
		if args[0].Kind() == KindClassRef {
			return map[string]*Node{keyRenderable: args[0]}, true
		}
		opts := map[string]*Node{keyPartial: args[0]}
		if len(args) == 2 {
			opts[keyLocals] = args[1]
		}
		return opts, true

	case len(args) == 1 && args[0].Kind() == KindHash:
		return hashToOptions(args[0])

	default:
		return nil, false
	}
}

// hashToOptions converts a hash literal into an options mapping. A single
// key that cannot be statically resolved to a symbol invalidates the whole
// call, not just that entry.
func hashToOptions(hash *Node) (map[string]*Node, bool) {
	opts := make(map[string]*Node, len(hash.Entries()))
	for _, entry := range hash.Entries() {
		if entry.Key == nil || entry.Key.Kind() != KindSymbolLit {
			return nil, false
		}
		opts[entry.Key.SymbolValue()] = entry.Value
	}
	return opts, true
}

// selectRenderType validates an options mapping and picks its render type.
// Rejects mappings with unknown keys and mappings naming no render type at
// all. When several render-type keys are present the highest-priority one
// wins; the others keep their values (layout is consulted again later).
func selectRenderType(opts map[string]*Node) (string, bool) {
	for key := range opts {
		if !knownKeys[key] {
			return "", false
		}
	}
	for _, key := range renderTypeKeys {
		if _, ok := opts[key]; ok {
			return key, true
		}
	}
	if _, ok := opts[keyRenderable]; ok {
		return keyRenderable, true
	}
	return "", false
}
