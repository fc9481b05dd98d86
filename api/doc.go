// Package api provides the REST interface to gridpath search sessions.
//
// Routes:
//
//	POST   /api/searches                 create from a session.Spec body → 201 Info
//	GET    /api/searches                 {"total", "searches"}
//	GET    /api/searches/{id}            Info
//	DELETE /api/searches/{id}            stop and forget
//	POST   /api/searches/{id}/step?n=k   k expansions → {"results", "search"}
//	POST   /api/searches/{id}/run        finish at once → {"outcome", "error"}
//	POST   /api/searches/{id}/animate    {"tick_ms", "steps_per_tick", "fast"} → 202 Info
//	POST   /api/searches/{id}/stop       cancel an animation
//	GET    /api/searches/{id}/path       Outcome with path and cost
//	GET    /api/searches/{id}/classify   every discovered cell and its status
//	GET    /api/searches/{id}/frame      text/plain terminal drawing
//	GET    /api/searches/{id}/image.png  PNG picture, ?scale=pixels per cell
//	GET    /api/searches/{id}/path.geojson  endpoints, explored cells and route
//	GET    /ws/{id}                      websocket event stream
//	GET    /metrics                      Prometheus exposition
//	GET    /healthz                      liveness
//
// Errors are JSON objects {"error": message}. Status codes:
//   - 400: malformed body or a spec that cannot describe a search
//   - 404: unknown search id
//   - 409: search busy animating, not running, or not yet succeeded
//
// A search that ends without a route is still a 200 result; its outcome
// has phase "failed" and the error field names the cause.
package api
