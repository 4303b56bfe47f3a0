package hclgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prelufuse/internal/ctxlog"
	"github.com/vk/prelufuse/internal/fsutil"
	"github.com/vk/prelufuse/internal/graphdef"
)

// Loader parses HCL graph containers into the in-memory model.
type Loader struct{}

// NewLoader creates a new graph container loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a graph file.
type fileRoot struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

type nodeBlock struct {
	Name   string       `hcl:"name,label"`
	Op     string       `hcl:"op"`
	Inputs []string     `hcl:"inputs,optional"`
	Attrs  []*attrBlock `hcl:"attr,block"`
}

// attrBlock carries exactly one of the attribute variants. The list value
// stays an expression so heterogeneous literals survive decoding.
type attrBlock struct {
	Name  string         `hcl:"name,label"`
	Int   *int64         `hcl:"int,optional"`
	Float *float64       `hcl:"float,optional"`
	Bool  *bool          `hcl:"bool,optional"`
	Str   *string        `hcl:"str,optional"`
	Type  *string        `hcl:"type,optional"`
	List  hcl.Expression `hcl:"list,optional"`
}

// Load discovers all .hcl files under the given paths and assembles them
// into a single graph: file order (sorted paths), then declaration order.
// Name uniqueness is deliberately not enforced here; the rewrite passes
// validate it themselves.
func (l *Loader) Load(ctx context.Context, paths ...string) (*graphdef.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl graph files found under %v", paths)
	}
	logger.Debug("Discovered graph files.", "count", len(files))

	parser := hclparse.NewParser()
	g := &graphdef.Graph{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse graph file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode graph file %s: %w", file, diags)
		}

		for _, nb := range root.Nodes {
			n, err := translateNode(nb)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			g.AddNode(n)
		}
	}

	logger.Debug("Graph loading complete.", "node_count", len(g.Nodes))
	return g, nil
}

// translateNode converts a decoded node block into the in-memory model.
func translateNode(nb *nodeBlock) (*graphdef.Node, error) {
	n := graphdef.NewNode(nb.Name, nb.Op, nb.Inputs...)
	for _, ab := range nb.Attrs {
		v, err := translateAttr(ab)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nb.Name, err)
		}
		n.SetAttr(ab.Name, v)
	}
	return n, nil
}

// translateAttr converts a decoded attr block into its tagged-union value.
func translateAttr(ab *attrBlock) (*graphdef.AttrValue, error) {
	variants := 0
	var out *graphdef.AttrValue

	if ab.Int != nil {
		variants++
		out = graphdef.IntAttr(*ab.Int)
	}
	if ab.Float != nil {
		variants++
		out = graphdef.FloatAttr(*ab.Float)
	}
	if ab.Bool != nil {
		variants++
		out = graphdef.BoolAttr(*ab.Bool)
	}
	if ab.Str != nil {
		variants++
		out = graphdef.StringAttr(*ab.Str)
	}
	if ab.Type != nil {
		variants++
		d, err := graphdef.ParseDataType(*ab.Type)
		if err != nil {
			return nil, fmt.Errorf("attr %q: %w", ab.Name, err)
		}
		out = graphdef.TypeAttr(d)
	}
	if ab.List != nil {
		val, diags := ab.List.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attr %q: evaluating list: %w", ab.Name, diags)
		}
		// gohcl fills an absent expression field with a static null
		// expression rather than leaving it nil, so a null value means
		// the list key was not written at all.
		if !val.IsNull() {
			variants++
			v, err := translateList(val)
			if err != nil {
				return nil, fmt.Errorf("attr %q: %w", ab.Name, err)
			}
			out = v
		}
	}

	if variants != 1 {
		return nil, fmt.Errorf("attr %q must set exactly one of int, float, bool, str, type, list (got %d)", ab.Name, variants)
	}
	return out, nil
}

// translateList converts an evaluated, non-null list value element by
// element.
func translateList(val cty.Value) (*graphdef.AttrValue, error) {
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("list value must be a list or tuple, got %s", val.Type().FriendlyName())
	}

	out := graphdef.ListAttr()
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		converted, err := listElemFromCty(elem)
		if err != nil {
			return nil, err
		}
		out.List = append(out.List, converted)
	}
	return out, nil
}

// listElemFromCty maps a cty list element onto the attribute union. Strings
// spelling a known type tag become type elements; all other strings are
// opaque byte strings.
func listElemFromCty(v cty.Value) (*graphdef.AttrValue, error) {
	switch v.Type() {
	case cty.String:
		s := v.AsString()
		if strings.HasPrefix(s, "DT_") {
			if d, err := graphdef.ParseDataType(s); err == nil {
				return graphdef.TypeAttr(d), nil
			}
		}
		return graphdef.StringAttr(s), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return graphdef.IntAttr(i), nil
		}
		f, _ := bf.Float64()
		return graphdef.FloatAttr(f), nil
	case cty.Bool:
		return graphdef.BoolAttr(v.True()), nil
	}
	return nil, fmt.Errorf("unsupported list element type %s", v.Type().FriendlyName())
}
