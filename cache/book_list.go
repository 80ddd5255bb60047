package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"Gin_postgres_redis_book_exchange/models"

	"github.com/redis/go-redis/v9"
)

// BookListStore 缓存 GET /books 的结果。任何书籍写操作都会递增代号，旧代号下的 key 自然失效。
// rdb 为 nil 时所有操作都是空操作。
type BookListStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBookListStore(rdb *redis.Client, ttl time.Duration) *BookListStore {
	return &BookListStore{rdb: rdb, ttl: ttl}
}

const genKey = "books:list:gen"

func listKey(gen int64, f models.BookFilter) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return fmt.Sprintf("books:list:%d:t=%s|g=%s|l=%s", gen, norm(f.Title), norm(f.Genre), norm(f.Location))
}

func (s *BookListStore) enabled() bool { return s != nil && s.rdb != nil && s.ttl > 0 }

func (s *BookListStore) generation(ctx context.Context) (int64, error) {
	gen, err := s.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get 命中返回 (books, gen, true)。未命中时 gen 为本次读到的代号，调用方查库后原样传给 Set；
// 关闭或 Redis 出错时 gen 为 -1。
func (s *BookListStore) Get(ctx context.Context, f models.BookFilter) ([]models.Book, int64, bool) {
	if !s.enabled() {
		return nil, -1, false
	}
	gen, err := s.generation(ctx)
	if err != nil {
		return nil, -1, false
	}
	b, err := s.rdb.Get(ctx, listKey(gen, f)).Bytes()
	if err != nil {
		return nil, gen, false
	}
	var books []models.Book
	if err := json.Unmarshal(b, &books); err != nil {
		return nil, gen, false
	}
	return books, gen, true
}

// Set 写到查库之前读到的代号下；期间有写操作的话这份结果落在旧代号，读不到
func (s *BookListStore) Set(ctx context.Context, gen int64, f models.BookFilter, books []models.Book) error {
	if !s.enabled() || gen < 0 {
		return nil
	}
	b, err := json.Marshal(books)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, listKey(gen, f), b, s.ttl).Err()
}

// Invalidate 递增代号；旧 key 靠 TTL 回收
func (s *BookListStore) Invalidate(ctx context.Context) error {
	if !s.enabled() {
		return nil
	}
	return s.rdb.Incr(ctx, genKey).Err()
}
