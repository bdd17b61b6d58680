package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/valueobject"
	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = `
CREATE TABLE exchange_profiles (
	id             BIGINT PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL,
	nip            TEXT NOT NULL DEFAULT '',
	agency         TEXT NOT NULL,
	position       TEXT NOT NULL,
	grade          TEXT NOT NULL DEFAULT '',
	current_region TEXT NOT NULL,
	desired_region TEXT NOT NULL,
	is_subscribed  BOOLEAN NOT NULL DEFAULT FALSE,
	is_verified    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE exchange_messages (
	id         BIGINT PRIMARY KEY,
	from_email TEXT NOT NULL,
	to_email   TEXT NOT NULL,
	body       TEXT NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT FALSE,
	metadata   JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE exchange_match_requests (
	id              BIGINT PRIMARY KEY,
	requester_email TEXT NOT NULL,
	target_email    TEXT NOT NULL,
	note            TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
`

// newTestDB spins up a disposable postgres container and applies the schema.
// These tests need a local docker daemon, so they are opt-in.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	if os.Getenv("ASNSWAP_TEST_CONTAINERS") == "" {
		t.Skip("set ASNSWAP_TEST_CONTAINERS=1 to run container-backed tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("asnswap"),
		tcpostgres.WithUsername("asnswap"),
		tcpostgres.WithPassword("asnswap"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return NewDB(pool, instrument.NewNoop())
}

func testProfile(id int64, email string) entity.Profile {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entity.Profile{
		ID:            id,
		Email:         email,
		Name:          "Ani Lestari",
		NIP:           "198703172010122001",
		Agency:        "Kementerian Keuangan",
		Position:      "Analis Anggaran",
		Grade:         "III/c",
		CurrentRegion: "Jakarta Pusat",
		DesiredRegion: "Bandung",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestDBProfiles(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	t.Run("UpsertThenGet", func(t *testing.T) {

		// Arrange
		p := testProfile(1, "ani@kemenkeu.go.id")

		// Act
		if err := s.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.GetProfileByEmail(ctx, "ani@kemenkeu.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != p.Name || got.DesiredRegion != "Bandung" || got.NIP != p.NIP {
			t.Fatalf("unexpected profile %+v", got)
		}
		if got.IsVerified || got.IsSubscribed {
			t.Fatalf("expected new profile flags off, got %+v", got)
		}
	})

	t.Run("UpsertUpdatePreservesVerification", func(t *testing.T) {

		// Arrange
		p := testProfile(2, "budi@bkn.go.id")
		if err := s.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.SetProfileVerified(ctx, p.Email, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		p.DesiredRegion = "Yogyakarta"
		p.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		if err := s.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.GetProfileByEmail(ctx, p.Email)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.DesiredRegion != "Yogyakarta" {
			t.Fatalf("expected updated region, got %q", got.DesiredRegion)
		}
		if !got.IsVerified {
			t.Fatalf("expected verification to survive profile update")
		}
	})

	t.Run("SearchMatchesSubstringCaseInsensitive", func(t *testing.T) {

		// Arrange
		p := testProfile(3, "citra@kemdikbud.go.id")
		p.DesiredRegion = "Surabaya"
		if err := s.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		got, err := s.SearchProfiles(ctx, entity.ProfileFilter{DesiredRegion: "suraba"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Email != "citra@kemdikbud.go.id" {
			t.Fatalf("unexpected search result %+v", got)
		}
	})

	t.Run("GetUnknownEmailIsNotFound", func(t *testing.T) {

		// Act
		_, err := s.GetProfileByEmail(ctx, "nobody@kemendagri.go.id")

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("VerifyUnknownEmailIsNotFound", func(t *testing.T) {

		// Act
		err := s.SetProfileVerified(ctx, "nobody@kemendagri.go.id", true)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDBMessages(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	seed := []entity.Message{
		{ID: 1, FromEmail: "a@kemenkeu.go.id", ToEmail: "b@bkn.go.id", Body: "halo", Metadata: valueobject.JSONMap{}, CreatedAt: now},
		{ID: 2, FromEmail: "b@bkn.go.id", ToEmail: "a@kemenkeu.go.id", Body: "halo juga", Metadata: valueobject.JSONMap{"client": "web"}, CreatedAt: now.Add(time.Second)},
		{ID: 3, FromEmail: "a@kemenkeu.go.id", ToEmail: "c@kemdikbud.go.id", Body: "lain", Metadata: valueobject.JSONMap{}, CreatedAt: now.Add(2 * time.Second)},
	}
	for _, m := range seed {
		if err := s.CreateMessage(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("ConversationCoversBothDirections", func(t *testing.T) {

		// Act
		got, err := s.GetConversation(ctx, "a@kemenkeu.go.id", "b@bkn.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(got))
		}
		if got[0].Body != "halo" || got[1].Body != "halo juga" {
			t.Fatalf("expected oldest first, got %+v", got)
		}
		if got[1].Metadata.GetString("client") != "web" {
			t.Fatalf("expected metadata roundtrip, got %+v", got[1].Metadata)
		}
	})

	t.Run("UnrelatedPairIsEmpty", func(t *testing.T) {

		// Act
		got, err := s.GetConversation(ctx, "b@bkn.go.id", "c@kemdikbud.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no messages, got %d", len(got))
		}
	})

	t.Run("DeleteProfileRemovesItsMessages", func(t *testing.T) {

		// Arrange
		if err := s.UpsertProfile(ctx, testProfile(10, "a@kemenkeu.go.id")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		if err := s.DeleteProfileByEmail(ctx, "a@kemenkeu.go.id"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.GetConversation(ctx, "a@kemenkeu.go.id", "b@bkn.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected messages gone with the profile, got %d", len(got))
		}
		if _, err := s.GetProfileByEmail(ctx, "a@kemenkeu.go.id"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected profile gone, got %v", err)
		}
	})

	t.Run("DeleteUnknownProfileIsNotFound", func(t *testing.T) {

		// Act
		err := s.DeleteProfileByEmail(ctx, "nobody@kemendagri.go.id")

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDBMatchRequests(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	seed := []entity.MatchRequest{
		{ID: 1, RequesterEmail: "a@kemenkeu.go.id", TargetEmail: "b@bkn.go.id", Note: "cocok", Status: entity.MatchStatusPending, CreatedAt: now},
		{ID: 2, RequesterEmail: "c@kemdikbud.go.id", TargetEmail: "a@kemenkeu.go.id", Status: entity.MatchStatusPending, CreatedAt: now.Add(time.Second)},
	}
	for _, m := range seed {
		if err := s.CreateMatchRequest(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("ListsRequestsOnEitherSideNewestFirst", func(t *testing.T) {

		// Act
		got, err := s.GetMatchRequestsByEmail(ctx, "a@kemenkeu.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 requests, got %d", len(got))
		}
		if got[0].ID != 2 || got[1].ID != 1 {
			t.Fatalf("expected newest first, got %+v", got)
		}
		if got[1].Status != entity.MatchStatusPending {
			t.Fatalf("unexpected status %q", got[1].Status)
		}
	})

	t.Run("DuplicateIDIsConflict", func(t *testing.T) {

		// Act
		err := s.CreateMatchRequest(ctx, seed[0])

		// Assert
		if !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}
