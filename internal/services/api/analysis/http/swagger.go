package http

import "skylens/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		swaggerkit.AddPath(spec, "/analyze", "post",
			swaggerkit.FormOp("Analysis", "Run a search and sentiment analysis pass",
				"query", "start_date", "end_date"))
	})
}
