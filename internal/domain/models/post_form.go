package model

type PostForm struct {
	Categories []*Category `json:"categories"`
	Tags       []*Tag      `json:"tags"`
}

type PostEditForm struct {
	Post       *PostDetailed `json:"post"`
	Categories []*Category   `json:"categories"`
	Tags       []*Tag        `json:"tags"`
	PostTagIDs []int64       `json:"post_tags"`
}
