package http

import "skylens/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		const tag = "Results"
		swaggerkit.AddPath(spec, "/save_result", "post", swaggerkit.JSONOp(tag, "Save a result set", true))
		swaggerkit.AddPath(spec, "/saved_list", "get", swaggerkit.JSONOp(tag, "List saved result names, most recent first", false))
		swaggerkit.AddPath(spec, "/saved/{name}", "get", swaggerkit.JSONOp(tag, "Load one saved result set", false))
		swaggerkit.AddPath(spec, "/saved_batch", "post", swaggerkit.JSONOp(tag, "Load several saved result sets in order", true))
		swaggerkit.AddPath(spec, "/latest", "get", swaggerkit.JSONOp(tag, "Result set of the most recent analysis run", false))
	})
}
