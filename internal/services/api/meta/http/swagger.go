package http

import "skylens/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		const tag = "Meta"
		for path, summary := range map[string]string{
			"/meta/health":  "Health check",
			"/meta/ready":   "Readiness probe with store check",
			"/meta/version": "Build and version info",
			"/meta/service": "Service info and uptime",
		} {
			swaggerkit.AddPath(spec, path, "get", swaggerkit.JSONOp(tag, summary, false))
		}
	})
}
