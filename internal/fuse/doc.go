// Package fuse implements the two graph-rewrite passes of the converter.
//
// Keras has no native PReLU primitive, so its compiler emits the
// six-node idiom
//
//	f(x) = Relu(x) + (neg_alpha * Relu(Neg(x)))
//
// for every parametric activation. ActivationIdiom collapses each instance
// of that idiom into a single synthetic Prelu(x, alpha) node. IntoFusedConv
// then folds a Prelu fed by a _FusedConv2D into the convolution's
// fused-operations attribute set, since the framework's own remapper will
// not fuse an op it does not know.
//
// Both passes are deterministic pure functions of their input graph,
// single-threaded, and assume exclusive ownership of the graph for their
// duration. A failed structural probe is a normal non-match; the only error
// either pass produces is a duplicate node name, raised before any
// mutation.
package fuse
