// Package websocket streams search progress to browsers over WebSocket.
//
// A central Hub owns every connection. Clients subscribe to one session when
// they connect (the api package maps GET /ws/{id} to Hub.ServeWS) and then
// receive that session's events:
//
//	{"session_id": "…", "event": "step",     "data": <search.StepResult>}
//	{"session_id": "…", "event": "snapshot", "data": <driver.Frame>}
//	{"session_id": "…", "event": "finished", "data": <outcome + error>}
//	{"session_id": "…", "event": "deleted"}
//
// The Hub implements session.Broadcaster. Broadcast encodes the event on the
// caller's goroutine and queues it without blocking; the Run loop fans it
// out to each client's send queue, and a client that falls too far behind
// is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	manager := session.NewManager(session.WithBroadcaster(hub))
//
// Client input is read only to detect disconnects and answer pings.
package websocket
