// Package server exposes the graph registry over HTTP.
//
// # Endpoints
//
//   - GET    /healthz                 - liveness probe
//   - GET    /metrics                 - Prometheus metrics
//   - GET    /api/graphs              - list graphs
//   - POST   /api/graphs              - add a graph
//   - GET    /api/graphs/{name}       - get a graph
//   - PUT    /api/graphs/{name}       - update or rename a graph
//   - DELETE /api/graphs/{name}       - remove a graph
//   - GET    /api/graphs/{name}/url   - render the Grafana panel URL
//   - /mcp                            - MCP streamable HTTP endpoint, when configured
//
// Mutations run through graph.Form one at a time, so every add, update or
// remove is saved (or discarded) before the next one starts.
//
// Errors map to status codes: not found 404, already exists 409, missing
// fields 400, save failures 500.
package server
