package opreg

import "github.com/vk/prelufuse/internal/graphdef"

// InstallPrelu registers the synthetic Prelu op's schema and an elementwise
// fallback kernel, so tooling can process a rewritten graph before a native
// kernel exists.
func InstallPrelu(r *Registry) {
	r.RegisterOp(&OpDef{
		Name: "Prelu",
		Inputs: []ArgDef{
			{Name: "x", Type: graphdef.DTFloat},
			{Name: "alpha", Type: graphdef.DTFloat},
		},
		Outputs: []ArgDef{
			{Name: "y", Type: graphdef.DTFloat},
		},
		Attrs: []AttrDef{
			{Name: "T", Type: "type", Allowed: []graphdef.DataType{graphdef.DTFloat}},
		},
	})
	r.RegisterFallback("Prelu", preluFallback)
}

// preluFallback computes f(x) = x for x >= 0 and alpha*x otherwise, with
// alpha broadcast against x: a single-element alpha applies everywhere,
// otherwise alpha cycles over its last axis.
func preluFallback(x, alpha []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		if v >= 0 {
			out[i] = v
			continue
		}
		a := alpha[0]
		if len(alpha) > 1 {
			a = alpha[i%len(alpha)]
		}
		out[i] = a * v
	}
	return out
}
