package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

func TestPostCreateWithTags(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	tags := NewTagStore(db)
	cats := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanPosts(t, db, "Intro to Goroutines")
		cleanTags(t, db, "Concurrency")
		cleanCategories(t, db, "Programming")
	})

	cat, err := cats.Create(&models.Category{Name: "Programming"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	tag, err := tags.Create(&models.Tag{Name: "Concurrency"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	created, err := posts.Create(&models.Post{
		Title:      "Intro to Goroutines",
		Content:    "Goroutines are lightweight threads.",
		Author:     "jane",
		CategoryID: &cat.ID,
		Tags:       []uuid.UUID{tag.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Slug != "intro-to-goroutines" {
		t.Errorf("expected slug %q, got %q", "intro-to-goroutines", created.Slug)
	}
	if created.Status != models.PostStatusDraft {
		t.Errorf("expected default status draft, got %q", created.Status)
	}
	if created.Likes != 0 || created.Views != 0 {
		t.Errorf("expected zero counters, got likes=%d views=%d", created.Likes, created.Views)
	}

	found, err := posts.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(found.Tags) != 1 || found.Tags[0] != tag.ID {
		t.Errorf("expected tags [%s], got %v", tag.ID, found.Tags)
	}
}

func TestPostCreateDuplicateTitle(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "Release Notes") })

	if _, err := posts.Create(&models.Post{
		Title: "Release Notes", Content: "v1", Author: "bob",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	if _, err := posts.Create(&models.Post{
		Title: " Release Notes ", Content: "v2", Author: "bob",
	}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestPostCreateUnknownTag(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "Bad Tag Ref") })

	_, err := posts.Create(&models.Post{
		Title:   "Bad Tag Ref",
		Content: "x",
		Author:  "bob",
		Tags:    []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestPostSlugCollisionGetsSuffix(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "Hello, World", "Hello World") })

	first, err := posts.Create(&models.Post{Title: "Hello, World", Content: "a", Author: "jane"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := posts.Create(&models.Post{Title: "Hello World", Content: "b", Author: "jane"})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Errorf("expected distinct slugs, both got %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "hello-world-") {
		t.Errorf("expected suffixed slug, got %q", second.Slug)
	}
}

func TestPostUpdateReplacesTags(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	tags := NewTagStore(db)
	t.Cleanup(func() {
		cleanPosts(t, db, "Tag Swap")
		cleanTags(t, db, "Old Topic", "New Topic")
	})

	oldTag, err := tags.Create(&models.Tag{Name: "Old Topic"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	newTag, err := tags.Create(&models.Tag{Name: "New Topic"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	created, err := posts.Create(&models.Post{
		Title: "Tag Swap", Content: "x", Author: "jane",
		Tags: []uuid.UUID{oldTag.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.Tags = []uuid.UUID{newTag.ID}
	created.Status = models.PostStatusPublished
	updated, err := posts.Update(created)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.PostStatusPublished {
		t.Errorf("expected published status, got %q", updated.Status)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != newTag.ID {
		t.Errorf("expected tags [%s], got %v", newTag.ID, updated.Tags)
	}
	if updated.Slug != created.Slug {
		t.Errorf("slug changed on update: %q -> %q", created.Slug, updated.Slug)
	}
}

func TestPostLikeAndViews(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "Counter Post") })

	created, err := posts.Create(&models.Post{Title: "Counter Post", Content: "x", Author: "jane"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	liked, err := posts.Like(created.ID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if liked.Likes != 1 {
		t.Errorf("expected 1 like, got %d", liked.Likes)
	}
	liked, err = posts.Like(created.ID)
	if err != nil {
		t.Fatalf("second Like failed: %v", err)
	}
	if liked.Likes != 2 {
		t.Errorf("expected 2 likes, got %d", liked.Likes)
	}

	if err := posts.IncrementViews(created.ID); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	found, err := posts.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Views != 1 {
		t.Errorf("expected 1 view, got %d", found.Views)
	}

	missing, err := posts.Like(uuid.New())
	if err != nil {
		t.Fatalf("Like on missing post errored: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing post, got %+v", missing)
	}
}

func TestPostDeleteCascadesCommentsAndTags(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)
	tags := NewTagStore(db)
	t.Cleanup(func() {
		cleanPosts(t, db, "Doomed Post")
		cleanTags(t, db, "Ephemeral")
	})

	tag, err := tags.Create(&models.Tag{Name: "Ephemeral"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	created, err := posts.Create(&models.Post{
		Title: "Doomed Post", Content: "x", Author: "jane",
		Tags: []uuid.UUID{tag.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	comment, err := comments.Add(&models.Comment{
		PostID: created.ID, Author: "alice", Content: "first",
	})
	if err != nil {
		t.Fatalf("Add comment failed: %v", err)
	}

	if _, err := posts.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	gone, err := comments.FindByID(comment.ID)
	if err != nil {
		t.Fatalf("FindByID after cascade failed: %v", err)
	}
	if gone != nil {
		t.Errorf("expected comment removed by cascade, got %+v", gone)
	}

	// The tag itself survives the post's deletion.
	survivor, err := tags.FindByID(tag.ID)
	if err != nil {
		t.Fatalf("FindByID tag failed: %v", err)
	}
	if survivor == nil {
		t.Error("expected tag to survive post deletion")
	}
}
