package middleware

import "net/http"

// Chain applies middleware in order (first to last), so the first one listed
// sees the request first:
//
//	handler := Chain(mux,
//	    AuthMiddleware(tokens), // resolves the user
//	    RequestLogging,         // logs with the resolved user id
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
