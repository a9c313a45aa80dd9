package signservice

// Route path constants
const (
	RouteSign       = "/sign"
	RouteIntrospect = "/introspect"
	RouteJWKS       = "/jwks"
	RouteHealthz    = "/healthz"
	RouteMetrics    = "/metrics"
)
