package middleware

import (
	"net/http"
	"slices"
	"strings"
)

const corsMaxAge = "86400"

// corsRoute is an API path a welcome page served from another origin may call,
// with the methods and request headers it uses there.
type corsRoute struct {
	prefix  string
	methods []string
	headers string
}

var corsRoutes = []corsRoute{
	{prefix: "/api/auth/login", methods: []string{http.MethodPost}, headers: "Accept, Content-Type"},
	{prefix: "/api/event/details/", methods: []string{http.MethodGet}, headers: "Accept"},
	{prefix: "/api/event/meta", methods: []string{http.MethodGet}, headers: "Accept, Authorization"},
}

func corsRouteFor(path string) (corsRoute, bool) {
	for _, rt := range corsRoutes {
		if strings.HasPrefix(path, rt.prefix) {
			return rt, true
		}
	}
	return corsRoute{}, false
}

// CORS lets allowed origins call the welcome page endpoints. Preflights are
// answered with 204 and carry allow headers only when the origin, path and
// requested method all match. The client authenticates with a bearer header,
// so credentials are never allowed.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Add("Vary", "Origin")
		_, originOK := allowed[origin]
		route, routeOK := corsRouteFor(r.URL.Path)

		if r.Method == http.MethodOptions {
			requested := r.Header.Get("Access-Control-Request-Method")
			if originOK && routeOK && slices.Contains(route.methods, requested) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(append(slices.Clone(route.methods), http.MethodOptions), ", "))
				w.Header().Set("Access-Control-Allow-Headers", route.headers)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if originOK && routeOK {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		}
		next.ServeHTTP(w, r)
	})
}
