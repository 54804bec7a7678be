package storage_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/storage"
)

func newTestSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func newRepos(t *testing.T) map[string]storage.Repo {
	t.Helper()

	mr := miniredis.RunT(t)
	redisRepo, err := storage.New(storage.Config{
		Driver: storage.DriverRedis,
		Redis:  storage.RedisConfig{Addr: mr.Addr(), Prefix: "test:"},
	}, storage.Dependencies{})
	require.NoError(t, err)

	sqliteRepo, err := storage.New(storage.Config{Driver: storage.DriverSQLite}, storage.Dependencies{SQLiteDB: newTestSQLiteDB(t)})
	require.NoError(t, err)

	fileRepo, err := storage.New(storage.Config{
		Driver:     storage.DriverFile,
		FilePath:   filepath.Join(t.TempDir(), "session.enc"),
		Passphrase: "correct horse",
	}, storage.Dependencies{})
	require.NoError(t, err)

	memRepo, err := storage.New(storage.Config{}, storage.Dependencies{})
	require.NoError(t, err)

	repos := map[string]storage.Repo{
		storage.DriverMemory: memRepo,
		storage.DriverFile:   fileRepo,
		storage.DriverRedis:  redisRepo,
		storage.DriverSQLite: sqliteRepo,
	}
	t.Cleanup(func() {
		for _, r := range repos {
			_ = r.Close()
		}
	})
	return repos
}

func TestRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, repo := range newRepos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get(ctx, storage.KeyAccessToken)
			require.ErrorIs(t, err, perrors.ErrStorageKeyNotFound)

			require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "a1"))
			require.NoError(t, repo.Set(ctx, storage.KeyRefreshToken, "r1"))
			require.NoError(t, repo.Set(ctx, storage.KeyUser, `{"id":1}`))

			// overwrite
			require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "a2"))
			v, err := repo.Get(ctx, storage.KeyAccessToken)
			require.NoError(t, err)
			require.Equal(t, "a2", v)

			require.NoError(t, repo.Delete(ctx, storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser))
			for _, k := range []string{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser} {
				_, err := repo.Get(ctx, k)
				require.ErrorIs(t, err, perrors.ErrStorageKeyNotFound)
			}

			// deleting missing keys is not an error
			require.NoError(t, repo.Delete(ctx, storage.KeyUser))
		})
	}
}

func TestFileRepoSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.enc")

	repo, err := storage.NewFile(path, "s3cret")
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, storage.KeyRefreshToken, "r1"))

	reopened, err := storage.NewFile(path, "s3cret")
	require.NoError(t, err)
	v, err := reopened.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "r1", v)

	wrong, err := storage.NewFile(path, "guess")
	require.NoError(t, err)
	_, err = wrong.Get(ctx, storage.KeyRefreshToken)
	require.ErrorIs(t, err, perrors.ErrSessionCorrupt)
}

func TestFileRepoRequiresPassphrase(t *testing.T) {
	_, err := storage.NewFile(filepath.Join(t.TempDir(), "s.enc"), "")
	require.ErrorIs(t, err, perrors.ErrStoragePassphrase)
}

func TestRedisRepoTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	repo, err := storage.NewRedis(storage.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Set(ctx, storage.KeyAccessToken, "a1"))
	require.True(t, mr.Exists("portal:session:accessToken"))

	mr.FastForward(2 * time.Minute)
	_, err = repo.Get(ctx, storage.KeyAccessToken)
	require.ErrorIs(t, err, perrors.ErrStorageKeyNotFound)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := storage.New(storage.Config{Driver: "etcd"}, storage.Dependencies{})
	require.ErrorIs(t, err, perrors.ErrUnsupported)

	_, err = storage.New(storage.Config{Driver: storage.DriverSQLite}, storage.Dependencies{})
	require.Error(t, err)
}
