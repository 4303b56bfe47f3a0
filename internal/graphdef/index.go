package graphdef

import "fmt"

// DuplicateNameError reports the first node name that appears more than
// once in a graph.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate node name detected: %q", e.Name)
}

// BuildIndex builds a name-to-node lookup over the graph. The map holds the
// same *Node instances as g.Nodes, never copies, so a mutation made through
// the index is visible when the sequence is read again.
//
// It fails with a *DuplicateNameError the moment a second node with an
// already-seen name is encountered. Rewrite passes run this check before
// touching anything, so a duplicate name never yields a partially rewritten
// graph.
func BuildIndex(g *Graph) (map[string]*Node, error) {
	index := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, exists := index[n.Name]; exists {
			return nil, &DuplicateNameError{Name: n.Name}
		}
		index[n.Name] = n
	}
	return index, nil
}
