package fuse

import (
	"context"

	"github.com/vk/prelufuse/internal/ctxlog"
	"github.com/vk/prelufuse/internal/graphdef"
)

// ActivationIdiom rewrites every instance of the compiler-emitted PReLU
// idiom into a single Prelu node. For each two-input Add/AddV2 root it
// probes the shape
//
//	root.input[0] -> Relu(x)
//	root.input[1] -> Mul(neg_alpha, Relu(Neg(x)))
//
// where neg_alpha is the single input of an arbitrary one-input node. On a
// full match the surviving Relu becomes Prelu(x, alpha), the root becomes
// an Identity reading it, and the Mul, the second Relu, and the Neg are
// dropped from the output. Any probe step failing skips the candidate with
// no partial rewrite.
//
// The returned graph is a fresh, ordered deep copy of the surviving nodes.
// A duplicate node name in the input is the only error, raised before any
// mutation.
func ActivationIdiom(ctx context.Context, g *graphdef.Graph) (*graphdef.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	index, err := graphdef.BuildIndex(g)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool)
	matches := 0
	for _, n := range g.Nodes {
		if (n.Op != "Add" && n.Op != "AddV2") || len(n.Input) != 2 {
			continue
		}

		relu := graphdef.ResolveInput(index, n.Input[0])
		if relu == nil || relu.Op != "Relu" || len(relu.Input) != 1 {
			continue
		}

		mul := graphdef.ResolveInput(index, n.Input[1])
		if mul == nil || mul.Op != "Mul" || len(mul.Input) != 2 {
			continue
		}

		// The node producing the multiplier's first operand is only a
		// vehicle for its input: that input is the alpha reference. The
		// node itself stays behind for downstream dead-code elimination.
		negAlpha := graphdef.ResolveInput(index, mul.Input[0])
		if negAlpha == nil || len(negAlpha.Input) != 1 {
			continue
		}
		alpha := negAlpha.Input[0]

		reluNeg := graphdef.ResolveInput(index, mul.Input[1])
		if reluNeg == nil || reluNeg.Op != "Relu" || len(reluNeg.Input) != 1 {
			continue
		}

		neg := graphdef.ResolveInput(index, reluNeg.Input[0])
		if neg == nil || neg.Op != "Neg" || len(neg.Input) != 1 {
			continue
		}

		// Both branches must read the identical upstream reference,
		// compared as exact strings.
		if relu.Input[0] != neg.Input[0] {
			continue
		}

		relu.Op = "Prelu"
		relu.Input = append(relu.Input, alpha)

		n.Op = "Identity"
		n.Input = []string{relu.Name}

		skip[mul.Name] = true
		skip[reluNeg.Name] = true
		skip[neg.Name] = true
		matches++
		logger.Debug("Fused activation idiom into Prelu node.",
			"prelu", relu.Name, "root", n.Name, "alpha", alpha)
	}

	out := &graphdef.Graph{Nodes: make([]*graphdef.Node, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		if skip[n.Name] {
			continue
		}
		out.Nodes = append(out.Nodes, n.Clone())
	}
	logger.Debug("Activation idiom pass complete.",
		"matches", matches, "nodes_in", len(g.Nodes), "nodes_out", len(out.Nodes))
	return out, nil
}
