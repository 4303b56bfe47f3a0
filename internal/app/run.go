package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/prelufuse/internal/ctxlog"
	"github.com/vk/prelufuse/internal/fuse"
	"github.com/vk/prelufuse/internal/graphdef"
	"github.com/vk/prelufuse/internal/hclgraph"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := a.loader.Load(ctx, appConfig.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph container: %w", err)
	}
	a.logger.Info("Graph container loaded.", "node_count", len(graph.Nodes))

	if err := graphdef.CheckAcyclic(graph); err != nil {
		return fmt.Errorf("invalid input graph: %w", err)
	}
	a.logger.Debug("Graph structure validation passed.")

	rewritten, err := fuse.ActivationIdiom(ctx, graph)
	if err != nil {
		return fmt.Errorf("activation idiom pass failed: %w", err)
	}
	a.logger.Info("Activation idiom pass finished.",
		"nodes_removed", len(graph.Nodes)-len(rewritten.Nodes))

	if appConfig.SkipConvFold {
		a.logger.Debug("Fused convolution fold skipped by configuration.")
	} else {
		if rewritten, err = fuse.IntoFusedConv(ctx, rewritten); err != nil {
			return fmt.Errorf("fused convolution fold failed: %w", err)
		}
		a.logger.Info("Fused convolution fold finished.")
	}

	if err := a.writeResult(rewritten, appConfig.OutPath); err != nil {
		return fmt.Errorf("failed to write rewritten graph: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeResult dumps the rewritten container to the configured destination.
func (a *App) writeResult(g *graphdef.Graph, outPath string) error {
	var w io.Writer = a.outW
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		a.logger.Info("Writing rewritten graph.", "path", outPath)
	}
	return hclgraph.Write(g, w)
}
