package tracker

import (
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
)

// localNameRe captures the partial's local variable name from the final path
// segment: optional leading underscore, then the name, then any extensions.
var localNameRe = regexp.MustCompile(`^_?([^.]+)`)

// resolvedTemplate is one successfully resolved render target.
type resolvedTemplate struct {
	renderType string
	path       string
	dynamic    bool   // target was a dynamic expression, not a literal path
	localName  string // implicit local for object/collection renders
}

// resolveTemplate determines the static path for the selected render type.
// dir is the directory of the view being extracted, used for relative
// literals. Dynamic targets (variables, bare calls) resolve through
// inflection to the conventional "<plural>/<singular>" partial path.
func resolveTemplate(opts map[string]*Node, renderType, dir string) (resolvedTemplate, bool) {
	node := opts[renderType]
	if node == nil {
		return resolvedTemplate{}, false
	}

	res := resolvedTemplate{renderType: renderType}
	switch {
	case node.Kind() == KindStringLit:
		res.path = resolveLiteral(node.StringValue(), dir)

	case renderType == keyRenderable:
		res.path = node.ClassName()

	default:
		base := dynamicBaseName(node)
		if base == "" {
			return resolvedTemplate{}, false
		}
		res.dynamic = true
		res.path = inflection.Plural(base) + "/" + inflection.Singular(base)
	}
	if res.path == "" {
		return resolvedTemplate{}, false
	}

	_, hasObject := opts[keyObject]
	_, hasCollection := opts[keyCollection]
	if hasObject && hasCollection {
		return resolvedTemplate{}, false
	}
	if hasObject || hasCollection || res.dynamic {
		// An implicit object/collection only makes sense for partials.
		if _, ok := opts[keyPartial]; !ok {
			return resolvedTemplate{}, false
		}
		res.localName = partialLocalName(opts, res.path)
	}
	return res, true
}

// resolveLiteral resolves a literal template name against the view's
// directory. Names that already carry a path separator are used verbatim.
func resolveLiteral(name, dir string) string {
	if strings.Contains(name, "/") || dir == "" {
		return name
	}
	return dir + "/" + name
}

// dynamicBaseName derives the inflection base from a dynamic render target.
// Returns "" for shapes outside the recognized set.
func dynamicBaseName(node *Node) string {
	switch node.Kind() {
	case KindVarRef:
		return strings.TrimLeft(node.VariableName(), "@$")
	case KindIdentCall, KindMethodCall:
		return node.MethodName()
	default:
		return ""
	}
}

// partialLocalName computes the local variable name an object/collection
// render exposes to the partial: the :as option when given as a literal,
// otherwise the name embedded in the path's final segment. Informational
// only; it never becomes a dependency.
func partialLocalName(opts map[string]*Node, path string) string {
	if as := opts[keyAs]; as != nil {
		switch as.Kind() {
		case KindStringLit:
			return as.StringValue()
		case KindSymbolLit:
			return as.SymbolValue()
		}
	}
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if m := localNameRe.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return ""
}
