package client

import (
	"strings"
)

// The frontend and backend deploy in several topologies: same origin behind
// the proxy, split dev ports, staging subdomains. The base URL is picked by
// walking an ordered list of named strategies instead of nested conditionals,
// so the fallback order is explicit and testable.

// DefaultLocalBackend is the backend URL forced during local development to
// avoid cross-origin preflight noise.
const DefaultLocalBackend = "http://localhost:3001/api"

// DevServerPort is the known frontend dev-server port
const DevServerPort = "5173"

type baseURLStrategy struct {
	name    string
	resolve func(hostname, port, buildTimeURL string) (string, bool)
}

var baseURLStrategies = []baseURLStrategy{
	{
		name: "localhost-override",
		resolve: func(hostname, _, _ string) (string, bool) {
			if hostname == "localhost" || hostname == "127.0.0.1" {
				return DefaultLocalBackend, true
			}
			return "", false
		},
	},
	{
		name: "build-time-url",
		resolve: func(_, _, buildTimeURL string) (string, bool) {
			if buildTimeURL == "" {
				return "", false
			}
			url := strings.TrimSuffix(buildTimeURL, "/")
			if !strings.HasSuffix(url, "/api") {
				url += "/api"
			}
			return url, true
		},
	},
	{
		name: "dev-server-port",
		resolve: func(_, port, _ string) (string, bool) {
			if port == DevServerPort {
				return DefaultLocalBackend, true
			}
			return "", false
		},
	},
	{
		name: "relative-api",
		resolve: func(_, _, _ string) (string, bool) {
			return "/api", true
		},
	},
}

// ResolveBaseURL picks the backend base URL from pure inputs. The result
// always routes API calls to a path ending in /api.
func ResolveBaseURL(hostname, port, buildTimeURL string) string {
	for _, strategy := range baseURLStrategies {
		if url, ok := strategy.resolve(hostname, port, buildTimeURL); ok {
			return url
		}
	}
	// The relative-api strategy always resolves
	return "/api"
}
