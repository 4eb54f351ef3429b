package snapshots_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/snapshots"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() snapshots.Repository
	repo    snapshots.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() snapshots.Repository { return snapshots.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() snapshots.Repository {
			client, cleanup := testutils.CreateTestRedisClient(t)
			t.Cleanup(cleanup)

			repo, err := snapshots.NewRedis(&snapshots.RedisConfig{Client: client})
			if err != nil {
				t.Fatalf("failed to create redis repository: %v", err)
			}
			return repo
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() snapshots.Repository {
			db, err := snapshots.OpenSQLite(filepath.Join(t.TempDir(), "tracker.db"))
			if err != nil {
				t.Fatalf("failed to open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })

			repo, err := snapshots.NewSQLite(context.Background(), &snapshots.SQLiteConfig{
				DB:    db,
				Clock: clock.New(),
			})
			if err != nil {
				t.Fatalf("failed to create sqlite repository: %v", err)
			}
			return repo
		},
	})
}

func (s *RepositoryTestSuite) TestLoadMissing() {
	out, err := s.repo.Load(s.ctx, snapshots.LoadInput{SessionID: "nobody"})
	s.Require().NoError(err)
	s.False(out.Found)
	s.Empty(out.Snapshot)
}

func (s *RepositoryTestSuite) TestSaveLoadClear() {
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-1", Snapshot: `{"round":1}`})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-1"})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal(`{"round":1}`, out.Snapshot)

	_, err = s.repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-1", Snapshot: `{"round":2}`})
	s.Require().NoError(err)

	out, err = s.repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-1"})
	s.Require().NoError(err)
	s.Equal(`{"round":2}`, out.Snapshot)

	cleared, err := s.repo.Clear(s.ctx, snapshots.ClearInput{SessionID: "table-1"})
	s.Require().NoError(err)
	s.True(cleared.Existed)

	out, err = s.repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-1"})
	s.Require().NoError(err)
	s.False(out.Found)
}

func (s *RepositoryTestSuite) TestClearMissing() {
	out, err := s.repo.Clear(s.ctx, snapshots.ClearInput{SessionID: "nobody"})
	s.Require().NoError(err)
	s.False(out.Existed)
}

func (s *RepositoryTestSuite) TestSessionsAreIsolated() {
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{SessionID: "a", Snapshot: "first"})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, snapshots.SaveInput{SessionID: "b", Snapshot: "second"})
	s.Require().NoError(err)

	_, err = s.repo.Clear(s.ctx, snapshots.ClearInput{SessionID: "a"})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, snapshots.LoadInput{SessionID: "b"})
	s.Require().NoError(err)
	s.Equal("second", out.Snapshot)
}

func (s *RepositoryTestSuite) TestEmptySessionID() {
	_, err := s.repo.Load(s.ctx, snapshots.LoadInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, snapshots.SaveInput{Snapshot: "x"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Clear(s.ctx, snapshots.ClearInput{})
	s.True(errors.IsInvalidArgument(err))
}

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestConfigValidation() {
	_, err := snapshots.NewRedis(nil)
	s.Require().Error(err)

	_, err = snapshots.NewRedis(&snapshots.RedisConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "client cannot be nil")

	_, client := testutils.CreateTestMiniredis(s.T())
	_, err = snapshots.NewRedis(&snapshots.RedisConfig{Client: client, TTL: -time.Second})
	s.Require().Error(err)
}

func (s *RedisRepositoryTestSuite) TestKeyLayoutAndTTL() {
	mr, client := testutils.CreateTestMiniredis(s.T())

	repo, err := snapshots.NewRedis(&snapshots.RedisConfig{Client: client, TTL: time.Hour})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-9", Snapshot: "{}"})
	s.Require().NoError(err)

	s.True(mr.Exists("combat_snapshot:table-9"))
	s.Equal(snapshots.Key("table-9"), "combat_snapshot:table-9")
	s.Equal(time.Hour, mr.TTL("combat_snapshot:table-9"))

	mr.FastForward(2 * time.Hour)

	out, err := repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-9"})
	s.Require().NoError(err)
	s.False(out.Found, "expired snapshots are gone")
}

func (s *RedisRepositoryTestSuite) TestLoadServerDown() {
	mr, client := testutils.CreateTestMiniredis(s.T())
	repo, err := snapshots.NewRedis(&snapshots.RedisConfig{Client: client})
	s.Require().NoError(err)

	mr.SetError("LOADING server is loading the dataset")

	_, err = repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-1"})
	s.Require().Error(err)
	s.Contains(err.Error(), "table-1")
}

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *SQLiteRepositoryTestSuite) TestConfigValidation() {
	_, err := snapshots.NewSQLite(s.ctx, &snapshots.SQLiteConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "DB")
	s.Contains(err.Error(), "Clock")

	_, err = snapshots.OpenSQLite(" ")
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteRepositoryTestSuite) TestUpdatedAtFollowsClock() {
	db, err := snapshots.OpenSQLite(filepath.Join(s.T().TempDir(), "tracker.db"))
	s.Require().NoError(err)
	defer func() { _ = db.Close() }()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(start)

	repo, err := snapshots.NewSQLite(s.ctx, &snapshots.SQLiteConfig{DB: db, Clock: clk})
	s.Require().NoError(err)

	_, err = repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-1", Snapshot: "{}"})
	s.Require().NoError(err)

	var updatedAt int64
	s.Require().NoError(db.QueryRowContext(s.ctx,
		`SELECT updated_at FROM combat_snapshots WHERE session_id = ?`, "table-1").Scan(&updatedAt))
	s.Equal(start.UnixMilli(), updatedAt)

	clk.Advance(time.Minute)
	_, err = repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-1", Snapshot: "{}"})
	s.Require().NoError(err)

	s.Require().NoError(db.QueryRowContext(s.ctx,
		`SELECT updated_at FROM combat_snapshots WHERE session_id = ?`, "table-1").Scan(&updatedAt))
	s.Equal(start.Add(time.Minute).UnixMilli(), updatedAt)
}

func (s *SQLiteRepositoryTestSuite) TestSurvivesReopen() {
	path := filepath.Join(s.T().TempDir(), "tracker.db")

	db, err := snapshots.OpenSQLite(path)
	s.Require().NoError(err)
	repo, err := snapshots.NewSQLite(s.ctx, &snapshots.SQLiteConfig{DB: db, Clock: clock.New()})
	s.Require().NoError(err)
	_, err = repo.Save(s.ctx, snapshots.SaveInput{SessionID: "table-1", Snapshot: `{"round":3}`})
	s.Require().NoError(err)
	s.Require().NoError(db.Close())

	db, err = snapshots.OpenSQLite(path)
	s.Require().NoError(err)
	defer func() { _ = db.Close() }()
	repo, err = snapshots.NewSQLite(s.ctx, &snapshots.SQLiteConfig{DB: db, Clock: clock.New()})
	s.Require().NoError(err)

	out, err := repo.Load(s.ctx, snapshots.LoadInput{SessionID: "table-1"})
	s.Require().NoError(err)
	s.Equal(`{"round":3}`, out.Snapshot)
}
