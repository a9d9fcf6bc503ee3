// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// PostStore manages blog posts, their tag assignments, and their counters.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, content, excerpt, author, category_id, image,
	status, meta_title, meta_description, is_featured, likes, views,
	published_at, created_at, updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author,
		&p.CategoryID, &p.Image, &p.Status, &p.MetaTitle, &p.MetaDescription,
		&p.IsFeatured, &p.Likes, &p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = []uuid.UUID{}
	return &p, nil
}

// Create inserts a new post with its tag assignments in one transaction.
// The trimmed title must be unused (ErrDuplicate otherwise); the slug is
// derived from it. Unknown category or tag references return
// ErrInvalidReference.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	title := strings.TrimSpace(p.Title)

	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM posts WHERE title = $1)`, title,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check post title: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	candidate, err := slug.Resolve(slug.Generate(title), s.slugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve post slug: %w", err)
	}

	status := p.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	for retried := false; ; retried = true {
		result, err := s.insertPost(p, title, candidate, status)
		if err == nil {
			return result, nil
		}
		if isUniqueViolation(err) {
			if retried {
				return nil, ErrDuplicate
			}
			candidate = slug.WithSuffix(slug.Generate(title))
			continue
		}
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
}

// insertPost runs the insert plus tag assignment in a single transaction.
func (s *PostStore) insertPost(p *models.Post, title, slugValue string, status models.PostStatus) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, author, category_id,
		                   image, status, meta_title, meta_description, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+postColumns,
		title, slugValue, p.Content, p.Excerpt, strings.TrimSpace(p.Author),
		p.CategoryID, p.Image, status, p.MetaTitle, p.MetaDescription, p.IsFeatured,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, err
	}

	for _, tagID := range p.Tags {
		if _, err := tx.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			result.ID, tagID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result.Tags = append(result.Tags, p.Tags...)
	return result, nil
}

func (s *PostStore) slugExists(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)`, candidate,
	).Scan(&exists)
	return exists, err
}

// FindByID retrieves a post by ID with its tag and comment identifier
// sequences populated. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	if p.Tags, err = s.loadTags(id); err != nil {
		return nil, err
	}
	if p.Comments, err = s.loadCommentIDs(id); err != nil {
		return nil, err
	}
	return p, nil
}

// loadTags returns the tag IDs assigned to a post.
func (s *PostStore) loadTags(postID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(
		`SELECT tag_id FROM post_tags WHERE post_id = $1 ORDER BY tag_id`, postID)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	tags := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		tags = append(tags, id)
	}
	return tags, rows.Err()
}

// loadCommentIDs returns the post's comment sequence in creation order.
// Every comment on the post is included, replies among them, matching how
// comments accumulate as they are added.
func (s *PostStore) loadCommentIDs(postID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(
		`SELECT id FROM comments WHERE post_id = $1 ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("load post comments: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post comment id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns posts ordered by creation date descending, with pagination
// and tag sequences populated in a single query.
func (s *PostStore) List(limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.author, p.category_id,
		       p.image, p.status, p.meta_title, p.meta_description, p.is_featured,
		       p.likes, p.views, p.published_at, p.created_at, p.updated_at,
		       pt.tag_id
		FROM (
			SELECT * FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2
		) p
		LEFT JOIN post_tags pt ON pt.post_id = p.id
		ORDER BY p.created_at DESC, p.id
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var p models.Post
		var tagID *uuid.UUID
		err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author,
			&p.CategoryID, &p.Image, &p.Status, &p.MetaTitle, &p.MetaDescription,
			&p.IsFeatured, &p.Likes, &p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
			&tagID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		i, seen := index[p.ID]
		if !seen {
			p.Tags = []uuid.UUID{}
			items = append(items, p)
			i = len(items) - 1
			index[p.ID] = i
		}
		if tagID != nil {
			items[i].Tags = append(items[i].Tags, *tagID)
		}
	}
	return items, rows.Err()
}

// Count returns the total number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Update writes all mutable fields of an existing post and replaces its tag
// assignments, in one transaction. The caller merges absent fields from the
// stored record first. The slug is not recomputed on update.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, author = $4, category_id = $5,
			image = $6, status = $7, meta_title = $8, meta_description = $9,
			is_featured = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+postColumns,
		strings.TrimSpace(p.Title), p.Content, p.Excerpt, strings.TrimSpace(p.Author),
		p.CategoryID, p.Image, p.Status, p.MetaTitle, p.MetaDescription,
		p.IsFeatured, p.ID,
	)
	result, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return nil, ErrInvalidReference
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, p.ID); err != nil {
		return nil, fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range p.Tags {
		if _, err := tx.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.ID, tagID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return nil, ErrInvalidReference
			}
			return nil, fmt.Errorf("assign post tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result.Tags = append(result.Tags, p.Tags...)
	return result, nil
}

// SetImage updates only the post's image path. Returns nil if the post
// does not exist.
func (s *PostStore) SetImage(id uuid.UUID, path string) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET image = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+postColumns, path, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set post image: %w", err)
	}
	p.Tags, err = s.loadTags(id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Like atomically increments the post's like counter and returns the
// updated post. Returns nil if the post does not exist.
func (s *PostStore) Like(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET likes = likes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("like post: %w", err)
	}
	p.Tags, err = s.loadTags(id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// IncrementViews atomically bumps the post's view counter. A missing post
// is a no-op.
func (s *PostStore) IncrementViews(id uuid.UUID) error {
	if _, err := s.db.Exec(
		`UPDATE posts SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment post views: %w", err)
	}
	return nil
}

// Delete removes a post by ID and returns the removed snapshot. Tag
// assignments and comments are removed by cascade.
func (s *PostStore) Delete(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		DELETE FROM posts WHERE id = $1
		RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return p, nil
}
