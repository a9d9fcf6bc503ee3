// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Comment threading errors. Add distinguishes the two lookups so handlers
// can report which side of the link was missing.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrParentNotFound = errors.New("parent comment not found")
)

// CommentStore manages comments and their threading. Reply sequences and a
// post's comment sequence are derived from parent_id/post_id by query, so
// adding or deleting a comment is a single atomic write.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, author, content, parent_id, likes, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.PostID, &c.Author, &c.Content, &c.ParentID, &c.Likes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Add creates a comment on a post. The post must exist; a reply's parent
// must exist and belong to the same post. No orphan reply is ever created:
// the insert is one row, guarded by foreign keys.
func (s *CommentStore) Add(c *models.Comment) (*models.Comment, error) {
	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, c.PostID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if c.ParentID != nil {
		var parentPost uuid.UUID
		err := s.db.QueryRow(
			`SELECT post_id FROM comments WHERE id = $1`, *c.ParentID,
		).Scan(&parentPost)
		if err == sql.ErrNoRows {
			return nil, ErrParentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("check parent comment: %w", err)
		}
		if parentPost != c.PostID {
			return nil, ErrParentNotFound
		}
	}

	row := s.db.QueryRow(`
		INSERT INTO comments (post_id, author, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		c.PostID, strings.TrimSpace(c.Author), c.Content, c.ParentID,
	)
	result, err := scanComment(row)
	if err != nil {
		// The pre-checks above can race with a concurrent delete; the
		// foreign keys catch that and tell us which side went missing.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "parent") {
				return nil, ErrParentNotFound
			}
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}

// ListByPost returns every comment on the post in creation order (replies
// included), each with its direct replies expanded one level. Returns
// ErrPostNotFound if the post does not exist.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]models.Comment, error) {
	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at, id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One level of reply expansion: attach each comment's direct children,
	// without expanding the children's own replies.
	children := map[uuid.UUID][]models.Comment{}
	for _, c := range items {
		if c.ParentID != nil {
			child := c
			child.Replies = nil
			children[*c.ParentID] = append(children[*c.ParentID], child)
		}
	}
	for i := range items {
		items[i].Replies = children[items[i].ID]
	}
	return items, nil
}

// FindByID retrieves a comment with its direct replies expanded one level.
// Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}

	replies, err := s.repliesOf(id)
	if err != nil {
		return nil, err
	}
	c.Replies = replies
	return c, nil
}

// repliesOf returns the direct replies to a comment in creation order.
func (s *CommentStore) repliesOf(id uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE parent_id = $1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load replies: %w", err)
	}
	defer rows.Close()

	var replies []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, *c)
	}
	return replies, rows.Err()
}

// Like atomically increments the comment's like counter and returns the
// updated comment. Returns nil if the comment does not exist.
func (s *CommentStore) Like(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		UPDATE comments SET likes = likes + 1
		WHERE id = $1
		RETURNING `+commentColumns, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("like comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment and, by cascade, its replies. Returns the
// removed snapshot, or nil if the comment does not exist.
func (s *CommentStore) Delete(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		DELETE FROM comments WHERE id = $1
		RETURNING `+commentColumns, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return c, nil
}
