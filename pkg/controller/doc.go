// Package controller contains HTTP middlewares and helper handlers used by the
// storefront web server.
//
// Provided middlewares:
//   - WithLogger: attaches a request id and a request-scoped logger, writes an access log.
//   - RateLimiter.Limit: per-client token bucket for expensive routes.
//
// Provided helpers:
//   - GetClientIP: best-effort originating client address.
//   - PprofMux: net/http/pprof handlers, mounted when profiling is enabled.
package controller
