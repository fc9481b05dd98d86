// Package session keeps live searches in memory for the HTTP, WebSocket and
// MCP surfaces.
//
// A session owns one search.Engine built from a Spec and guards it with a
// mutex. Clients either step it by hand (Step, Run) or start an animation
// (Animate) that drives it with the driver package and publishes every step
// through a Broadcaster. Sessions are not persisted; deleting one or closing
// the Manager cancels its animation.
package session
