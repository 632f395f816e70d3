package store_test

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"lepa/internal/store"
	"lepa/internal/testsupport"
)

func TestInsertAssignsIdentifier(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	id, err := st.Insert(ctx, store.CollectionRecordings, json.RawMessage(`{"title":"Igal Igal"}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected store-assigned identifier")
	}

	docs, err := st.ListAll(ctx, store.CollectionRecordings)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("unexpected documents: %#v", docs)
	}
	if docs[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to be recorded")
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := st.Insert(ctx, store.CollectionRecordings, json.RawMessage(`{"title":"a"}`)); err != nil {
		t.Fatalf("Insert recording: %v", err)
	}
	if _, err := st.Insert(ctx, store.CollectionStories, json.RawMessage(`{"title":"b"}`)); err != nil {
		t.Fatalf("Insert story: %v", err)
	}

	stories, err := st.ListAll(ctx, store.CollectionStories)
	if err != nil {
		t.Fatalf("ListAll stories: %v", err)
	}
	if len(stories) != 1 {
		t.Fatalf("expected one story, got %d", len(stories))
	}
	count, err := st.Count(ctx, store.CollectionRecordings)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one recording, got %d", count)
	}
}

func TestRepeatedListsReturnEqualSets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for _, title := range []string{"one", "two", "three"} {
		body, _ := json.Marshal(map[string]string{"title": title})
		if _, err := st.Insert(ctx, store.CollectionRecordings, body); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	first, err := st.ListAll(ctx, store.CollectionRecordings)
	if err != nil {
		t.Fatalf("first ListAll: %v", err)
	}
	second, err := st.ListAll(ctx, store.CollectionRecordings)
	if err != nil {
		t.Fatalf("second ListAll: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("list sizes differ: %d vs %d", len(first), len(second))
	}
	ids := func(docs []store.Document) []string {
		out := make([]string, len(docs))
		for i, doc := range docs {
			out[i] = doc.ID
		}
		sort.Strings(out)
		return out
	}
	a, b := ids(first), ids(second)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("list contents differ: %v vs %v", a, b)
		}
	}
}

func TestDeleteByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	id, err := st.Insert(ctx, store.CollectionRecordings, json.RawMessage(`{"title":"gone soon"}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := st.DeleteByID(ctx, store.CollectionRecordings, id); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	docs, err := st.ListAll(ctx, store.CollectionRecordings)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, doc := range docs {
		if doc.ID == id {
			t.Fatal("expected document to be deleted")
		}
	}

	// Deleting again is a no-op, matching remote-store semantics.
	if err := st.DeleteByID(ctx, store.CollectionRecordings, id); err != nil {
		t.Fatalf("repeat DeleteByID failed: %v", err)
	}
}

func TestReopenKeepsDocuments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()
	id, err := first.Insert(ctx, store.CollectionStories, json.RawMessage(`{"title":"kept"}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := testsupport.MustOpenStore(t, cfg)
	docs, err := second.ListAll(ctx, store.CollectionStories)
	if err != nil {
		t.Fatalf("ListAll after reopen: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Fatalf("expected persisted document, got %#v", docs)
	}
}
