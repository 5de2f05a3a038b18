package bluesky

import "encoding/json"

// Session is the authenticated state returned by createSession
type Session struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	DID        string `json:"did"`
}

// Author is the post author profile slice we care about
type Author struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

// FacetFeature is one feature of a rich-text facet (link, mention, tag)
type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri"`
	DID  string `json:"did"`
	Tag  string `json:"tag"`
}

// Facet is a rich-text annotation over a byte range of the post text
type Facet struct {
	Features []FacetFeature `json:"features"`
}

// ImageView is a single resolved image in an embed view
type ImageView struct {
	Thumb    string `json:"thumb"`
	Fullsize string `json:"fullsize"`
	Alt      string `json:"alt"`
}

// Embed is the resolved embed view on a post. Only the variants the service
// surfaces are modeled; everything else stays in the passthrough maps
type Embed struct {
	Type     string         `json:"$type"`
	Images   []ImageView    `json:"images"`
	Record   *EmbedRecord   `json:"record"`
	External map[string]any `json:"external"`
}

// EmbedRecord is a quoted post inside an embed view
type EmbedRecord struct {
	Value map[string]any `json:"value"`
}

// PostView models app.bsky.feed.defs#postView with every field optional.
// Record stays raw so one malformed record skips one post, not the batch
type PostView struct {
	URI         string          `json:"uri"`
	CID         string          `json:"cid"`
	Author      *Author         `json:"author"`
	Record      json.RawMessage `json:"record"`
	Embed       *Embed          `json:"embed"`
	IndexedAt   string          `json:"indexedAt"`
	ReplyCount  *int64          `json:"replyCount"`
	RepostCount *int64          `json:"repostCount"`
	LikeCount   *int64          `json:"likeCount"`
	QuoteCount  *int64          `json:"quoteCount"`
}

// PostRecord is the decoded app.bsky.feed.post record body
type PostRecord struct {
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt"`
	Langs     []string   `json:"langs"`
	Facets    []Facet    `json:"facets"`
	Reply     *ReplyRefs `json:"reply"`
}

// RecordRef is a strong reference to a record (uri + cid)
type RecordRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// ReplyRefs are the root/parent references of a reply record
type ReplyRefs struct {
	Root   RecordRef `json:"root"`
	Parent RecordRef `json:"parent"`
}
