package graphdef

// Node is a single operation in the dataflow graph. Name is the node's
// identity within its graph; Input holds raw references to producing nodes
// in declaration order.
type Node struct {
	Name  string
	Op    string
	Input []string
	Attr  map[string]*AttrValue
}

// Graph is an ordered sequence of nodes. Order is meaningful: rewrite
// passes preserve it, and the container writer emits it as-is.
type Graph struct {
	Nodes []*Node
}

// NewNode constructs a node with the given name, op tag, and inputs. The
// attribute bag starts nil and is materialized on first SetAttr.
func NewNode(name, op string, inputs ...string) *Node {
	return &Node{
		Name:  name,
		Op:    op,
		Input: inputs,
	}
}

// SetAttr stores an attribute value under the given key, creating the bag
// if needed. The value is stored by reference, not copied.
func (n *Node) SetAttr(key string, v *AttrValue) {
	if n.Attr == nil {
		n.Attr = make(map[string]*AttrValue)
	}
	n.Attr[key] = v
}

// LookupAttr returns the attribute stored under key, or nil if the node has
// no such attribute.
func (n *Node) LookupAttr(key string) *AttrValue {
	return n.Attr[key]
}

// Clone returns a deep copy of the node. Mutations on the copy are never
// visible through the original.
func (n *Node) Clone() *Node {
	out := &Node{
		Name:  n.Name,
		Op:    n.Op,
		Input: append([]string(nil), n.Input...),
	}
	if n.Attr != nil {
		out.Attr = make(map[string]*AttrValue, len(n.Attr))
		for k, v := range n.Attr {
			out.Attr[k] = v.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the graph, preserving node order.
func (g *Graph) Clone() *Graph {
	out := &Graph{Nodes: make([]*Node, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, n.Clone())
	}
	return out
}

// AddNode appends a node to the graph sequence and returns it.
func (g *Graph) AddNode(n *Node) *Node {
	g.Nodes = append(g.Nodes, n)
	return n
}
