// Package app bootstraps grafanagraphs: it configures logging, loads the
// application configuration, opens the graph store and builds the form and
// URL renderer every command works with.
//
// Long-running modes live here too. Serve runs the HTTP API (with the MCP
// endpoint mounted) and the store watcher under one errgroup; ServeMCP runs
// the MCP server over stdio.
//
// Example usage:
//
//	application, err := app.NewApplication(ctx, app.NewConfig(debug, configPath, "cli"))
//	if err != nil {
//	    return err
//	}
//	defer application.Close()
//	res := application.Form().Submit(ctx, sub)
package app
