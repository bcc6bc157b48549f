package tracker

import "strings"

// RenderCall is one render invocation: the ordered argument nodes of a
// single call site.
type RenderCall struct {
	Args []*Node
}

// CallGroup holds all call sites for one invoked method name, in source
// order. Groups themselves are ordered by first occurrence so the flattened
// output follows the source.
type CallGroup struct {
	Method string
	Calls  []RenderCall
}

// ExtractDependencies returns the virtual paths of every template the given
// view statically depends on. name identifies the view and supplies the
// directory for relative resolution. Rejected invocations are silently
// skipped; duplicates are preserved; extraction itself never fails.
func ExtractDependencies(name string, groups []CallGroup) []string {
	dir := viewDirectory(name)
	deps := []string{}
	for _, group := range groups {
		for _, call := range group.Calls {
			if d, ok := renderDependencies(dir, call); ok {
				deps = append(deps, d...)
			}
		}
	}
	return deps
}

// renderDependencies resolves one invocation into zero to three virtual
// paths: spacer partial first, the primary target, then a layout companion.
func renderDependencies(dir string, call RenderCall) ([]string, bool) {
	opts, ok := normalizeArguments(call.Args)
	if !ok {
		return nil, false
	}
	renderType, ok := selectRenderType(opts)
	if !ok {
		return nil, false
	}
	res, ok := resolveTemplate(opts, renderType, dir)
	if !ok {
		return nil, false
	}

	var deps []string
	if spacer, ok := opts[keySpacerTemplate]; ok && spacer != nil && spacer.Kind() == KindStringLit {
		deps = append(deps, virtualPath(keyPartial, resolveLiteral(spacer.StringValue(), dir)))
	}
	deps = append(deps, virtualPath(res.renderType, res.path))
	if renderType != keyLayout {
		// The companion layout is taken verbatim, without directory
		// resolution. Longstanding upstream behavior; kept as is.
		if layout, ok := opts[keyLayout]; ok && layout != nil && layout.Kind() == KindStringLit {
			deps = append(deps, virtualPath(keyLayout, layout.StringValue()))
		}
	}
	return deps, true
}

// virtualPath maps a resolved name to its dependency identifier. Partials
// and layouts mark the final path segment with a leading underscore.
func virtualPath(renderType, path string) string {
	if renderType == keyPartial || renderType == keyLayout {
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			return path[:i+1] + "_" + path[i+1:]
		}
		return "_" + path
	}
	return path
}

// viewDirectory returns the directory portion of a view name, or "" when
// the name has no path component.
func viewDirectory(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return ""
}
