package hclgraph

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prelufuse/internal/graphdef"
)

// Write emits the graph as an HCL container, nodes in sequence order and
// attribute blocks sorted by key so the output is deterministic.
func Write(g *graphdef.Graph, w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, n := range g.Nodes {
		if i > 0 {
			body.AppendNewline()
		}
		nb := body.AppendNewBlock("node", []string{n.Name}).Body()
		nb.SetAttributeValue("op", cty.StringVal(n.Op))

		if len(n.Input) > 0 {
			inputs := make([]cty.Value, 0, len(n.Input))
			for _, ref := range n.Input {
				inputs = append(inputs, cty.StringVal(ref))
			}
			nb.SetAttributeValue("inputs", cty.ListVal(inputs))
		}

		keys := make([]string, 0, len(n.Attr))
		for k := range n.Attr {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			ab := nb.AppendNewBlock("attr", []string{k}).Body()
			if err := writeAttr(ab, n.Attr[k]); err != nil {
				return fmt.Errorf("node %q attr %q: %w", n.Name, k, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// writeAttr emits one attribute variant into its attr block body.
func writeAttr(body *hclwrite.Body, v *graphdef.AttrValue) error {
	switch v.Kind {
	case graphdef.AttrInt:
		body.SetAttributeValue("int", cty.NumberIntVal(v.Int))
	case graphdef.AttrFloat:
		body.SetAttributeValue("float", cty.NumberFloatVal(v.Float))
	case graphdef.AttrBool:
		body.SetAttributeValue("bool", cty.BoolVal(v.Bool))
	case graphdef.AttrBytes:
		body.SetAttributeValue("str", cty.StringVal(string(v.Bytes)))
	case graphdef.AttrType:
		body.SetAttributeValue("type", cty.StringVal(v.Type.String()))
	case graphdef.AttrList:
		elems := make([]cty.Value, 0, len(v.List))
		for _, e := range v.List {
			converted, err := listElemToCty(e)
			if err != nil {
				return err
			}
			elems = append(elems, converted)
		}
		body.SetAttributeValue("list", cty.TupleVal(elems))
	default:
		return fmt.Errorf("unsupported attribute kind %d", v.Kind)
	}
	return nil
}

// listElemToCty maps a list element back to a cty value. The inverse of
// listElemFromCty.
func listElemToCty(v *graphdef.AttrValue) (cty.Value, error) {
	switch v.Kind {
	case graphdef.AttrInt:
		return cty.NumberIntVal(v.Int), nil
	case graphdef.AttrFloat:
		return cty.NumberFloatVal(v.Float), nil
	case graphdef.AttrBool:
		return cty.BoolVal(v.Bool), nil
	case graphdef.AttrBytes:
		return cty.StringVal(string(v.Bytes)), nil
	case graphdef.AttrType:
		return cty.StringVal(v.Type.String()), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported list element kind %d", v.Kind)
}
