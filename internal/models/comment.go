// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a post. A nil ParentID marks a root
// comment; replies reference their parent comment.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	ParentID  *uuid.UUID `json:"parent,omitempty"`
	Likes     int        `json:"likes"`
	CreatedAt time.Time  `json:"created_at"`

	// Replies holds the direct children, expanded one level by store
	// methods. A reply's own replies are not expanded further.
	Replies []Comment `json:"replies,omitempty"`
}

// IsReply returns true if the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
