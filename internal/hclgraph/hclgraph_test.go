package hclgraph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/prelufuse/internal/graphdef"
)

// writeFixture drops a graph file into a temp dir and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads nodes with attributes", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "x" {
  op = "Placeholder"
}

node "conv" {
  op     = "_FusedConv2D"
  inputs = ["x", "filter", "bias"]

  attr "T" {
    type = "DT_FLOAT"
  }
  attr "fused_ops" {
    list = ["BiasAdd"]
  }
  attr "num_args" {
    int = 1
  }
  attr "use_cudnn_on_gpu" {
    bool = true
  }
  attr "epsilon" {
    float = 0.001
  }
  attr "padding" {
    str = "SAME"
  }
}
`)

		g, err := NewLoader().Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)

		assert.Equal(t, "x", g.Nodes[0].Name)
		assert.Equal(t, "Placeholder", g.Nodes[0].Op)
		assert.Empty(t, g.Nodes[0].Input)

		conv := g.Nodes[1]
		assert.Equal(t, "_FusedConv2D", conv.Op)
		assert.Equal(t, []string{"x", "filter", "bias"}, conv.Input)
		assert.Equal(t, graphdef.TypeAttr(graphdef.DTFloat), conv.LookupAttr("T"))
		assert.Equal(t, graphdef.ListAttr(graphdef.StringAttr("BiasAdd")), conv.LookupAttr("fused_ops"))
		assert.Equal(t, graphdef.IntAttr(1), conv.LookupAttr("num_args"))
		assert.Equal(t, graphdef.BoolAttr(true), conv.LookupAttr("use_cudnn_on_gpu"))
		assert.Equal(t, graphdef.FloatAttr(0.001), conv.LookupAttr("epsilon"))
		assert.Equal(t, graphdef.StringAttr("SAME"), conv.LookupAttr("padding"))
	})

	t.Run("type tags inside lists load as type elements", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Case"
  attr "Tin" {
    list = ["DT_FLOAT", "DT_INT32"]
  }
  attr "branches" {
    list = ["then_fn", "else_fn"]
  }
}
`)

		g, err := NewLoader().Load(ctx, path)
		require.NoError(t, err)
		n := g.Nodes[0]
		assert.Equal(t,
			graphdef.ListAttr(graphdef.TypeAttr(graphdef.DTFloat), graphdef.TypeAttr(graphdef.DTInt32)),
			n.LookupAttr("Tin"))
		assert.Equal(t,
			graphdef.ListAttr(graphdef.StringAttr("then_fn"), graphdef.StringAttr("else_fn")),
			n.LookupAttr("branches"))
	})

	t.Run("merges directory files in sorted order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
node "second" {
  op     = "Relu"
  inputs = ["first"]
}
`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
node "first" {
  op = "Placeholder"
}
`), 0o644))

		g, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "first", g.Nodes[0].Name)
		assert.Equal(t, "second", g.Nodes[1].Name)
	})

	t.Run("scalar attr blocks need no list key", func(t *testing.T) {
		// Each attr block writes exactly one scalar variant; the absent
		// list key must not register as a set variant.
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "num_args" {
    int = 1
  }
  attr "T" {
    type = "DT_FLOAT"
  }
}
`)

		g, err := NewLoader().Load(ctx, path)
		require.NoError(t, err)
		n := g.Nodes[0]
		assert.Equal(t, graphdef.IntAttr(1), n.LookupAttr("num_args"))
		assert.Equal(t, graphdef.TypeAttr(graphdef.DTFloat), n.LookupAttr("T"))
	})

	t.Run("rejects an attr mixing scalar and list", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "value" {
    int  = 1
    list = [1]
  }
}
`)

		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, `attr "value" must set exactly one of`)
	})

	t.Run("rejects a non-iterable list value", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "value" {
    list = 5
  }
}
`)

		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "list value must be a list or tuple")
	})

	t.Run("rejects an attr with two variants", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "value" {
    int   = 1
    float = 1.5
  }
}
`)

		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, `attr "value" must set exactly one of`)
	})

	t.Run("rejects an empty attr", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "value" {}
}
`)

		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "got 0")
	})

	t.Run("rejects an unknown type tag", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `
node "n" {
  op = "Const"
  attr "T" {
    type = "DT_BANANA"
  }
}
`)

		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "unknown data type")
	})

	t.Run("rejects malformed HCL", func(t *testing.T) {
		path := writeFixture(t, "graph.hcl", `node "n" {`)
		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "failed to parse graph file")
	})

	t.Run("errors when no graph files exist", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		assert.ErrorContains(t, err, "no .hcl graph files found")
	})
}

func TestWriteRoundTrip(t *testing.T) {
	g := &graphdef.Graph{}
	g.AddNode(graphdef.NewNode("x", "Placeholder"))
	g.AddNode(graphdef.NewNode("alpha", "Const"))
	conv := g.AddNode(graphdef.NewNode("conv", "_FusedConv2D", "x", "filter", "bias", "alpha"))
	conv.SetAttr("fused_ops", graphdef.ListAttr(graphdef.StringAttr("BiasAdd"), graphdef.StringAttr("Prelu")))
	conv.SetAttr("num_args", graphdef.IntAttr(2))
	conv.SetAttr("T", graphdef.TypeAttr(graphdef.DTFloat))
	g.AddNode(graphdef.NewNode("out", "Identity", "conv:0", "^x"))

	var buf bytes.Buffer
	require.NoError(t, Write(g, &buf))

	path := writeFixture(t, "graph.hcl", buf.String())
	loaded, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(g, loaded))
}
