package fuse

import (
	"context"

	"github.com/vk/prelufuse/internal/ctxlog"
	"github.com/vk/prelufuse/internal/graphdef"
)

// Attribute keys on _FusedConv2D nodes that the fold keeps in sync: the
// ordered list of fused elementwise ops and the declared count of extra
// inputs beyond input/filter/bias.
const (
	fusedOpsAttr = "fused_ops"
	numArgsAttr  = "num_args"
)

// IntoFusedConv folds each two-input Prelu node whose first input is a
// _FusedConv2D into that convolution: the alpha reference becomes an extra
// convolution input, "Prelu" is appended to the fused_ops list, and
// num_args is incremented to keep the declared extra-input count in step
// with the actual one. The Prelu node is demoted to an Identity reading the
// convolution, so its consumers transparently pick up the fused result.
//
// A convolution already carrying two or more fused ops is left alone; the
// runtime kernel supports at most one fused elementwise op ahead of the
// activation. No node is removed; dead Identity nodes are left for an
// external dead-code-elimination stage. The input container itself is
// mutated and returned.
func IntoFusedConv(ctx context.Context, g *graphdef.Graph) (*graphdef.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	index, err := graphdef.BuildIndex(g)
	if err != nil {
		return nil, err
	}

	matches := 0
	for _, n := range g.Nodes {
		if n.Op != "Prelu" || len(n.Input) != 2 {
			continue
		}

		conv := graphdef.ResolveInput(index, n.Input[0])
		if conv == nil || conv.Op != "_FusedConv2D" {
			continue
		}
		// A malformed attribute bag (wrong-kinded fused_ops or num_args)
		// disqualifies the candidate before anything is mutated.
		fusedOps := conv.LookupAttr(fusedOpsAttr)
		if fusedOps != nil && (fusedOps.Kind != graphdef.AttrList || len(fusedOps.List) > 1) {
			continue
		}
		numArgs := conv.LookupAttr(numArgsAttr)
		if numArgs != nil && numArgs.Kind != graphdef.AttrInt {
			continue
		}

		alpha := n.Input[1]
		conv.Input = append(conv.Input, alpha)

		// An absent attribute behaves as its empty value, matching the
		// original container's default-on-access map semantics.
		if fusedOps == nil {
			fusedOps = graphdef.ListAttr()
			conv.SetAttr(fusedOpsAttr, fusedOps)
		}
		fusedOps.List = append(fusedOps.List, graphdef.StringAttr("Prelu"))

		if numArgs == nil {
			numArgs = graphdef.IntAttr(0)
			conv.SetAttr(numArgsAttr, numArgs)
		}
		numArgs.Int++

		n.Op = "Identity"
		n.Input = n.Input[:1]
		matches++
		logger.Debug("Folded Prelu into fused convolution.",
			"conv", conv.Name, "identity", n.Name, "alpha", alpha)
	}

	logger.Debug("Fused convolution fold pass complete.", "matches", matches)
	return g, nil
}
