// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func TestTagStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)
	ctx := context.Background()

	name := "Tag Test " + uuid.NewString()[:8]
	created, err := s.Create(ctx, &models.Tag{Name: name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, created.ID) })

	if created.Slug == "" {
		t.Error("expected slug derived from name")
	}

	found, err := s.FindBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.Name != name {
		t.Errorf("FindBySlug: got %+v", found)
	}

	missing, err := s.FindBySlug(ctx, "nonexistent-tag-xyz-"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("FindBySlug (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown slug")
	}
}

func TestTagStoreListForPostsEmpty(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)

	got, err := s.ListForPosts(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListForPosts: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
