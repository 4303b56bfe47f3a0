// Package graphdef holds the in-memory model of a dataflow graph as emitted
// by a modeling framework's compiler: an ordered sequence of named nodes,
// each carrying an operation tag, input references, and a typed attribute
// bag.
//
// # Why graphdef Exists
//
// The rewrite passes in internal/fuse mutate nodes in place while scanning,
// and later filter the node sequence against a removal set. That only works
// if the name index and the canonical sequence alias the same *Node
// instances. graphdef owns that contract: BuildIndex never copies, Clone is
// the only way to get a detached node, and every helper documents which side
// of that line it is on.
//
// # Input references
//
// An input reference is a string naming a producing node, optionally
// decorated with an output-slot suffix ("conv:1") or a control-dependency
// prefix ("^init"). The model never interprets the decorations beyond
// stripping them for index lookups; all semantic comparisons in the rewrite
// passes are exact-string comparisons on the raw reference.
package graphdef
