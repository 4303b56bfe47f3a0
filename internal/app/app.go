// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/prelufuse/internal/hclgraph"
	"github.com/vk/prelufuse/internal/opreg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer // rewritten graph container
	logW     io.Writer // log stream, kept apart from the container output
	logger   *slog.Logger
	registry *opreg.Registry
	loader   *hclgraph.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and an op
// registry already carrying the synthetic Prelu schema and fallback kernel.
func NewApp(outW, logW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig, logW)
	logger.Debug("Logger configured successfully.")

	// The rewrite passes introduce Prelu nodes; downstream tooling needs
	// the schema and a callable stand-in registered up front. The passes
	// themselves never consult the registry.
	reg := opreg.New()
	opreg.InstallPrelu(reg)
	logger.Debug("Synthetic op schemas registered.")

	return &App{
		outW:     outW,
		logW:     logW,
		logger:   logger,
		registry: reg,
		loader:   hclgraph.NewLoader(),
	}
}

// Registry returns the application's op registry. This is primarily for testing.
func (a *App) Registry() *opreg.Registry {
	return a.registry
}
