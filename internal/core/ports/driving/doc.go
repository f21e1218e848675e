// Package driving defines interfaces that external actors (CLI, TUI, HTTP API, MCP)
// use to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Each method is one user action. Prior state (a session or text) is passed in
// explicitly rather than held by the service.
//
// Implementations of these interfaces live in internal/core/services.
package driving
