package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"Gin_postgres_redis_book_exchange/config"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

// NewRedis starts a miniredis server and a client pointing at it.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

// MustUser registers a user with the given role; email doubles as name.
func MustUser(t *testing.T, repo *db.Repo, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Name:     email,
		Email:    email,
		Password: "secret",
		Mobile:   "555-0100",
		Role:     role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

// MustBook lists an AVAILABLE book owned by ownerID.
func MustBook(t *testing.T, repo *db.Repo, ownerID, title, genre, location string) *models.Book {
	t.Helper()
	b := &models.Book{
		Title:       title,
		Author:      "Author of " + title,
		Location:    location,
		ContactInfo: "call me",
		OwnerID:     ownerID,
	}
	if genre != "" {
		b.Genre = &genre
	}
	require.NoError(t, repo.CreateBook(context.Background(), b))
	return b
}

// SetCreatedAt 改写书的创建时间，用来固定列表顺序
func SetCreatedAt(t *testing.T, repo *db.Repo, bookID string, at time.Time) {
	t.Helper()
	require.NoError(t, repo.DB.Model(&models.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("created_at", at).Error)
}
