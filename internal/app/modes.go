package app

import (
	"context"
	"io"

	"grafanagraphs/internal/mcpserver"
	"grafanagraphs/internal/server"
	"grafanagraphs/internal/store"
	"grafanagraphs/internal/watch"
	"grafanagraphs/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	// Listen overrides the configured listen address.
	Listen string
	// Version is announced by the MCP endpoint.
	Version string
}

// Serve runs the HTTP API, with the MCP endpoint mounted at /mcp, until ctx
// is cancelled. File-backed stores are watched and reloaded on change.
func (a *Application) Serve(ctx context.Context, opts ServeOptions) error {
	listen := opts.Listen
	if listen == "" {
		listen = a.appConfig.Server.Listen
	}

	mcp := mcpserver.New(mcpserver.Options{
		Form:     a.form,
		Renderer: a.renderer,
		Version:  opts.Version,
		Lock:     &a.mu,
	})
	srv := server.New(server.Options{
		Form:      a.form,
		Renderer:  a.renderer,
		RateLimit: a.appConfig.Server.RateLimit,
		MCP:       mcp.HTTPHandler(),
		Lock:      &a.mu,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, listen)
	})

	if fb, ok := a.store.Backend().(store.FileBackend); ok {
		w := watch.New(watch.Options{
			Path:  fb.Path(),
			Store: a.store,
			Lock:  &a.mu,
		})
		g.Go(func() error {
			return w.Run(ctx)
		})
	} else {
		logging.Debug("Serve", "Store backend %s is not file based, watcher disabled", a.store.Backend().Name())
	}

	return g.Wait()
}

// ServeMCP runs the MCP server over in and out until ctx is cancelled or in
// is closed.
func (a *Application) ServeMCP(ctx context.Context, version string, in io.Reader, out io.Writer) error {
	mcp := mcpserver.New(mcpserver.Options{
		Form:     a.form,
		Renderer: a.renderer,
		Version:  version,
		Lock:     &a.mu,
	})
	return mcp.ServeStdio(ctx, in, out)
}
