// Package mcpserver exposes the graph registry as Model Context Protocol
// tools.
//
// Tools:
//   - graph_list: list every configured graph
//   - graph_get: show one graph
//   - graph_add: add a graph
//   - graph_update: change or rename a graph
//   - graph_remove: remove a graph
//   - graph_url: render the Grafana panel URL of a graph
//
// Registry errors are returned as tool error results, never as protocol
// errors, so clients can show the message to the user. The server runs over
// stdio (grafanagraphs mcp) or streamable HTTP mounted by the HTTP API.
package mcpserver
