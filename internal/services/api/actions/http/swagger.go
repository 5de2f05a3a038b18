package http

import "skylens/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		const tag = "Actions"
		for path, summary := range map[string]string{
			"/follow":     "Follow an account",
			"/unfollow":   "Remove a follow",
			"/like":       "Like a post",
			"/unlike":     "Remove a like",
			"/repost":     "Repost a post",
			"/unrepost":   "Remove a repost",
			"/reply":      "Reply to a post",
			"/get_thread": "Fetch a post thread",
		} {
			swaggerkit.AddPath(spec, path, "post", swaggerkit.JSONOp(tag, summary, true))
		}
	})
}
