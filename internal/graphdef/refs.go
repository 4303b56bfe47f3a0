package graphdef

import "strings"

// IsControlInput reports whether the reference is a control dependency
// ("^name") rather than a data edge.
func IsControlInput(ref string) bool {
	return strings.HasPrefix(ref, "^")
}

// NodeNameFromInput extracts the producing node's name from an input
// reference, dropping a leading control marker and a trailing output-slot
// suffix. "^init" and "conv:1" both reduce to their bare node names.
func NodeNameFromInput(ref string) string {
	name := strings.TrimPrefix(ref, "^")
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name
}

// ResolveInput looks up the node producing the given reference. It returns
// nil when the reference does not resolve: during pattern probing an absent
// producer is a normal non-match, not an error.
func ResolveInput(index map[string]*Node, ref string) *Node {
	return index[NodeNameFromInput(ref)]
}
