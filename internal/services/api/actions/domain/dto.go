// Package domain holds DTOs for platform actions
package domain

// FollowInput follows an account by DID
type FollowInput struct {
	DID string `json:"did" validate:"required" example:"did:plc:z72i7hdynmk6r22z27h6tvur"`
}

// UnfollowInput deletes a follow record by its at:// URI
type UnfollowInput struct {
	URI string `json:"uri" validate:"required" example:"at://did:plc:me/app.bsky.graph.follow/3k2"`
}

// LikeInput likes a post by strong reference
type LikeInput struct {
	URI string `json:"uri" validate:"required"`
	CID string `json:"cid" validate:"required"`
}

// UnlikeInput deletes a like record by its at:// URI
type UnlikeInput struct {
	URI string `json:"uri" validate:"required"`
}

// RepostInput reposts a post by strong reference
type RepostInput struct {
	URI string `json:"uri" validate:"required"`
	CID string `json:"cid" validate:"required"`
}

// UnrepostInput deletes a repost record by its at:// URI
type UnrepostInput struct {
	URI string `json:"uri" validate:"required"`
}

// ReplyInput posts a reply under a parent post
type ReplyInput struct {
	Text      string `json:"text" validate:"required,max=300"`
	ParentURI string `json:"parent_uri" validate:"required"`
}

// ThreadInput fetches the resolved thread of a post
type ThreadInput struct {
	URI string `json:"uri" validate:"required"`
}

// RecordOutput is the strong reference of a created record
type RecordOutput struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Thread is the passthrough thread view
type Thread = map[string]any
