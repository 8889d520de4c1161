package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"launchpad/internal/heropool"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to build pgx mock: %v", err)
	}
	t.Cleanup(pool.Close)

	s, err := New(pool)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, pool
}

func testPool(t *testing.T) heropool.Pool {
	t.Helper()
	p, err := heropool.NewPool("img-a", "img-b", "img-c")
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	return p
}

func TestClaimInsertsFirstFreeCandidate(t *testing.T) {
	s, mock := newMockStore(t)
	p := testPool(t)
	key := heropool.Key("AI", "Berlin", "ai-berlin-0001")
	want := heropool.Assign(p, key, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT resource_id FROM hero_claims WHERE owner").
		WithArgs("ai-berlin-0001").
		WillReturnRows(pgxmock.NewRows([]string{"resource_id"}))
	mock.ExpectQuery("SELECT resource_id FROM hero_claims").
		WillReturnRows(pgxmock.NewRows([]string{"resource_id"}))
	mock.ExpectExec("INSERT INTO hero_claims").
		WithArgs(want, "ai-berlin-0001", key).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := s.Claim(context.Background(), p, key, "ai-berlin-0001")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimRetriesAfterLostRace(t *testing.T) {
	s, mock := newMockStore(t)
	p := testPool(t)
	key := "race-key"
	first := heropool.Assign(p, key, nil)
	second := heropool.Assign(p, key, heropool.NewUsedSet(first))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT resource_id FROM hero_claims").
		WillReturnRows(pgxmock.NewRows([]string{"resource_id"}))
	mock.ExpectExec("INSERT INTO hero_claims").
		WithArgs(first, "", key).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec("INSERT INTO hero_claims").
		WithArgs(second, "", key).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := s.Claim(context.Background(), p, key, "")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got != second {
		t.Fatalf("expected %s after lost race, got %s", second, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimReturnsExistingOwnerClaim(t *testing.T) {
	s, mock := newMockStore(t)
	p := testPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT resource_id FROM hero_claims WHERE owner").
		WithArgs("slug").
		WillReturnRows(pgxmock.NewRows([]string{"resource_id"}).AddRow("img-c"))
	mock.ExpectCommit()

	got, err := s.Claim(context.Background(), p, "key", "slug")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if got != "img-c" {
		t.Fatalf("expected existing claim img-c, got %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimExhaustedPoolAcceptsCollision(t *testing.T) {
	s, mock := newMockStore(t)
	p := testPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT resource_id FROM hero_claims").
		WillReturnRows(pgxmock.NewRows([]string{"resource_id"}).AddRow("img-a").AddRow("img-b").AddRow("img-c"))
	mock.ExpectCommit()

	got, err := s.Claim(context.Background(), p, "key", "")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if want := heropool.Assign(p, "key", nil); got != want {
		t.Fatalf("expected collision fallback %s, got %s", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS hero_claims").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCommit()

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
