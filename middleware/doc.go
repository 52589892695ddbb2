// Package middleware provides net/http middleware for campaign attribution and
// the request plumbing around it: UTM cookie syncing, request IDs, client IP
// extraction and request logging.
//
// All middleware follow the same pattern:
//   - A default constructor for common use cases
//   - A WithConfig constructor taking a configuration struct
//   - A Skip function to bypass execution for specific requests
//   - Context helpers for retrieving stored values
//
// Every constructor returns func(http.Handler) http.Handler, so the middleware
// chain with any router that accepts standard handlers.
//
// # UTM Middleware
//
// UTM builds a utm.Store for each request, syncs it against the query string
// and the stored cookie, and puts it into the request context. Cookie write
// failures are logged and never interrupt the request.
//
//	import "github.com/dmitrymomot/utmcookie/middleware"
//
//	mux.Handle("/", middleware.UTM(
//		utm.WithLifetime(utm.Lifetime{Months: 1}),
//		utm.WithDomain(".example.com"),
//	)(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		if store, ok := middleware.GetUTM(r.Context()); ok {
//			source, _ := store.Get("source")
//			// ...
//		}
//	}
//
// Configuration loaded from the environment plugs in through utm.Config:
//
//	var cfg utm.Config
//	config.MustLoad(&cfg)
//	mw := middleware.UTMWithConfig(middleware.UTMConfig{
//		Options: cfg.Options(),
//		Logger:  log,
//		Skip: func(r *http.Request) bool {
//			return strings.HasPrefix(r.URL.Path, "/static/")
//		},
//	})
//
// # Request ID Middleware
//
// RequestID assigns an identifier to each request, stores it in context and
// echoes it in the X-Request-ID response header. GetRequestID reads it back.
//
// # Client IP Middleware
//
// ClientIP resolves the real client address from proxy headers and stores it
// in context for GetClientIP.
//
// # Logging Middleware
//
// Logging writes one slog record per request with method, path, status,
// duration, request ID and client IP. Server errors log at error level,
// client errors and slow requests at warn level.
//
//	h := middleware.RequestID()(
//		middleware.LoggingWithLogger(log)(
//			middleware.UTM(opts...)(mux),
//		),
//	)
package middleware
