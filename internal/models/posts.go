package models

import "time"

type Post struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`

	// AuthorName is a snapshot taken at creation time. It is not kept in
	// sync with later renames of the author.
	AuthorID   int64  `db:"author_id" json:"author_id"`
	AuthorName string `db:"author_name" json:"author_name"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
