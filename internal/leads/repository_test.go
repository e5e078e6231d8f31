package leads

import (
	"context"
	"testing"
	"time"
)

func TestRepository_Create(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	req := &CreateLeadRequest{
		Name:    "Jane Smith",
		Email:   "jane@example.com",
		Phone:   "+5511987654321",
		Plan:    "faq",
		Message: "Queremos começar pelo FAQ",
	}

	lead, err := repo.Create(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if lead.Plan != req.Plan {
		t.Errorf("expected plan %s, got %s", req.Plan, lead.Plan)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRepository_CreateValidates(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Create(context.Background(), &CreateLeadRequest{Name: "Ana", Plan: "faq"}); err != ErrMissingContact {
		t.Fatalf("expected ErrMissingContact, got %v", err)
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateLeadRequest{Name: "Test User", Email: "test@example.com", Plan: "faq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, found.ID)
	}

	if _, err := repo.GetByID(ctx, "nonexistent"); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestRepository_ListNewestFirstWithPaging(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var names []string
	for _, name := range []string{"a", "b", "c", "d"} {
		if _, err := repo.Create(ctx, &CreateLeadRequest{Name: name, Email: name + "@x.com", Plan: "faq"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		names = append(names, name)
	}

	page, err := repo.List(ctx, ListLeadsFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].Name != "c" || page[1].Name != "b" {
		t.Fatalf("unexpected page %+v", page)
	}

	empty, err := repo.List(ctx, ListLeadsFilter{Offset: len(names)})
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty page, got %v %v", empty, err)
	}
}
