package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/wordchain/foundation/web"
)

// corsMaxAge is how long, in seconds, a browser may cache a preflight answer.
const corsMaxAge = "86400"

// Cors sets the response headers needed for Cross-Origin Resource Sharing.
// The miner API is read only so only GET and OPTIONS are advertised.
func Cors(origin string) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", origin)
			hdr.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			hdr.Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type")
			hdr.Set("Access-Control-Max-Age", corsMaxAge)

			// Caches must not reuse a response across origins unless every
			// origin is allowed.
			if origin != "*" {
				hdr.Add("Vary", "Origin")
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
