package graphdef

import "fmt"

// CheckAcyclic verifies that no node is reachable from itself by following
// input references. References to nodes outside the graph (feeds, weights
// supplied by the environment) are ignored. Driver-side sanity check only;
// the rewrite passes never call it.
func CheckAcyclic(g *Graph) error {
	index, err := BuildIndex(g)
	if err != nil {
		return err
	}

	// Classic DFS with a visiting set for the current stack and a visited
	// set for nodes already proven safe.
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		visiting[n.Name] = true
		for _, ref := range n.Input {
			dep := ResolveInput(index, ref)
			if dep == nil {
				continue
			}
			if visiting[dep.Name] {
				return fmt.Errorf("cycle detected involving node %q", dep.Name)
			}
			if !visited[dep.Name] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.Name)
		visited[n.Name] = true
		return nil
	}

	for _, n := range g.Nodes {
		if !visited[n.Name] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
