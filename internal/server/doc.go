// Package server wires and runs the application's HTTP server.
//
// The server satisfies the workers.Worker contract: Run blocks until its
// context is cancelled and then shuts the listener down gracefully, so it
// can be started side by side with the background workers.
package server
