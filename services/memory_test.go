package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type note struct {
	Text string
}

func TestMemoryTableOwnerScopedOrder(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable[note]()
	now := time.Now()

	for _, r := range []Row[note]{
		{ID: "1", OwnerID: "u1", Data: note{"first"}, CreatedAt: now},
		{ID: "2", OwnerID: "u2", Data: note{"other"}, CreatedAt: now},
		{ID: "3", OwnerID: "u1", Data: note{"second"}, CreatedAt: now},
	} {
		if err := tbl.Insert(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.ID, err)
		}
	}

	rows, err := tbl.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	got := Data(rows)
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestMemoryTableKeysAndErrors(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable[note]()

	if err := tbl.Insert(ctx, Row[note]{ID: "a", OwnerID: "a", Key: "ada@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Insert(ctx, Row[note]{ID: "b", OwnerID: "b", Key: "ada@example.com"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := tbl.GetByKey(ctx, "ada@example.com"); err != nil {
		t.Fatalf("get by key: %v", err)
	}

	if err := tbl.Update(ctx, "missing", note{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := tbl.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := tbl.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
