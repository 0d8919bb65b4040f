package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"user_id"`
	CategoryID *int64             `json:"category_id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Slug       string             `json:"slug"`
	Published  bool               `json:"published"`
	Image      *string            `json:"image"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

// HasImage reports whether a stored file is attached to the post.
func (p *Post) HasImage() bool {
	return p.Image != nil && *p.Image != ""
}
