package httpx

import "net/http"

// WrapMiddleware adapts a net/http middleware into an echo MiddlewareFunc.
// The auth package's gatekeeper, token verifier, and policy middlewares are
// all net/http-shaped; this is the bridge onto the echo chain. When the
// wrapped middleware writes a response without calling downstream, the echo
// handler never runs.
func WrapMiddleware(mw func(http.Handler) http.Handler) MiddlewareFunc {
	if mw == nil {
		return func(next HandlerFunc) HandlerFunc { return next }
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			var nextErr error
			downstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)
				nextErr = next(c)
			})
			mw(downstream).ServeHTTP(c.Response(), c.Request())
			return nextErr
		}
	}
}
