package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	Follow(ctx context.Context, in FollowInput) (RecordOutput, error)
	Unfollow(ctx context.Context, in UnfollowInput) error
	Like(ctx context.Context, in LikeInput) (RecordOutput, error)
	Unlike(ctx context.Context, in UnlikeInput) error
	Repost(ctx context.Context, in RepostInput) (RecordOutput, error)
	Unrepost(ctx context.Context, in UnrepostInput) error
	Reply(ctx context.Context, in ReplyInput) (RecordOutput, error)
	GetThread(ctx context.Context, in ThreadInput) (Thread, error)
}
