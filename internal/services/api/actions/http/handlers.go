// Package http provides http transport for platform actions
package http

import (
	stdhttp "net/http"

	"skylens/internal/modkit/httpkit"
	"skylens/internal/services/api/actions/domain"
	svc "skylens/internal/services/api/actions/service"
)

// Register mounts action endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.FollowInput](r, "/follow", h.follow)
	httpkit.PostJSON[domain.UnfollowInput](r, "/unfollow", h.unfollow)
	httpkit.PostJSON[domain.LikeInput](r, "/like", h.like)
	httpkit.PostJSON[domain.UnlikeInput](r, "/unlike", h.unlike)
	httpkit.PostJSON[domain.RepostInput](r, "/repost", h.repost)
	httpkit.PostJSON[domain.UnrepostInput](r, "/unrepost", h.unrepost)
	httpkit.PostJSON[domain.ReplyInput](r, "/reply", h.reply)
	httpkit.PostJSON[domain.ThreadInput](r, "/get_thread", h.getThread)
}

type handlers struct{ svc svc.Service }

// @Summary Follow an account
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.FollowInput true "Target DID"
// @Success 200 {object} domain.RecordOutput "ok"
// @Router /follow [post]
func (h *handlers) follow(r *stdhttp.Request, in domain.FollowInput) (any, error) {
	return h.svc.Follow(r.Context(), in)
}

// @Summary Remove a follow
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.UnfollowInput true "Follow record URI"
// @Success 200 "ok"
// @Router /unfollow [post]
func (h *handlers) unfollow(r *stdhttp.Request, in domain.UnfollowInput) (any, error) {
	return nil, h.svc.Unfollow(r.Context(), in)
}

// @Summary Like a post
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.LikeInput true "Post reference"
// @Success 200 {object} domain.RecordOutput "ok"
// @Router /like [post]
func (h *handlers) like(r *stdhttp.Request, in domain.LikeInput) (any, error) {
	return h.svc.Like(r.Context(), in)
}

// @Summary Remove a like
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.UnlikeInput true "Like record URI"
// @Success 200 "ok"
// @Router /unlike [post]
func (h *handlers) unlike(r *stdhttp.Request, in domain.UnlikeInput) (any, error) {
	return nil, h.svc.Unlike(r.Context(), in)
}

// @Summary Repost a post
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.RepostInput true "Post reference"
// @Success 200 {object} domain.RecordOutput "ok"
// @Router /repost [post]
func (h *handlers) repost(r *stdhttp.Request, in domain.RepostInput) (any, error) {
	return h.svc.Repost(r.Context(), in)
}

// @Summary Remove a repost
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.UnrepostInput true "Repost record URI"
// @Success 200 "ok"
// @Router /unrepost [post]
func (h *handlers) unrepost(r *stdhttp.Request, in domain.UnrepostInput) (any, error) {
	return nil, h.svc.Unrepost(r.Context(), in)
}

// @Summary Reply to a post
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.ReplyInput true "Reply text and parent"
// @Success 200 {object} domain.RecordOutput "ok"
// @Router /reply [post]
func (h *handlers) reply(r *stdhttp.Request, in domain.ReplyInput) (any, error) {
	return h.svc.Reply(r.Context(), in)
}

// @Summary Fetch a post thread
// @Tags Actions
// @Accept json
// @Produce json
// @Param payload body domain.ThreadInput true "Post URI"
// @Success 200 {object} object "ok"
// @Router /get_thread [post]
func (h *handlers) getThread(r *stdhttp.Request, in domain.ThreadInput) (any, error) {
	return h.svc.GetThread(r.Context(), in)
}
