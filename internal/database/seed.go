package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one category,
// two tags, and a published welcome post. It is a no-op when any post
// already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var categoryID string
	err := db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ('General', 'general', 'Uncategorized posts')
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (title, slug, content, author, category_id, status)
		VALUES ('Welcome to InkPress', 'welcome-to-inkpress',
		        'This is your first post. Edit or delete it to get started.',
		        'InkPress', $1, 'published')
		RETURNING id
	`, categoryID).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}

	for _, tag := range []struct{ name, slug string }{
		{"news", "news"},
		{"getting-started", "getting-started"},
	} {
		var tagID string
		err := db.QueryRow(`
			INSERT INTO tags (name, slug) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
			RETURNING id
		`, tag.name, tag.slug).Scan(&tagID)
		if err != nil {
			return fmt.Errorf("seed tag %s: %w", tag.name, err)
		}
		if _, err := db.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID,
		); err != nil {
			return fmt.Errorf("seed post tag: %w", err)
		}
	}

	slog.Info("database seeded with sample content", "post", "welcome-to-inkpress")
	return nil
}
