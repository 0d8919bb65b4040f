package model

// PostDetailed is a post with its relations. The post fields are inlined in
// JSON; a post without a category renders "category": null.
type PostDetailed struct {
	*Post
	Category *Category `json:"category"`
	Tags     []*Tag    `json:"tags"`
	User     *User     `json:"user,omitempty"`
}
