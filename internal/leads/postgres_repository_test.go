package leads

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var leadRowColumns = []string{"id", "proposal_id", "name", "email", "phone", "plan", "message", "created_at"}

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	createdAt := time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO proposal_leads").
		WithArgs(pgxmock.AnyArg(), "cm-remedios", "Ana", "ana@x.com", "", "agendamento", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		ProposalID: "cm-remedios",
		Name:       "Ana",
		Email:      "ana@x.com",
		Plan:       "agendamento",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.ID == "" || !lead.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected lead %+v", lead)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_CreateSkipsInvalid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	if _, err := repo.Create(context.Background(), &CreateLeadRequest{Email: "a@b.com", Plan: "faq"}); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected query: %v", err)
	}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	id := "0b6c1f8e-4a4e-4c55-9d0f-5c1d2b1e7a10"
	createdAt := time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery("FROM proposal_leads WHERE id").WithArgs(id).
		WillReturnRows(pgxmock.NewRows(leadRowColumns).AddRow(id, "cm-remedios", "Ana", "ana@x.com", "", "faq", "oi", createdAt))
	lead, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lead.Plan != "faq" || lead.Message != "oi" {
		t.Fatalf("unexpected lead %+v", lead)
	}

	mock.ExpectQuery("FROM proposal_leads WHERE id").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), id); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound for malformed id, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	now := time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery("FROM proposal_leads").WithArgs("faq", 10, 0).
		WillReturnRows(pgxmock.NewRows(leadRowColumns).
			AddRow("id-2", "p", "Bia", "b@x.com", "", "faq", "", now).
			AddRow("id-1", "p", "Ana", "a@x.com", "", "faq", "", now.Add(-time.Hour)))

	leads, err := repo.List(context.Background(), ListLeadsFilter{Plan: "faq", Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 2 || leads[0].Name != "Bia" {
		t.Fatalf("unexpected leads %+v", leads)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
