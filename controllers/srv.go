// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"

	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/cache"
	"Gin_postgres_redis_book_exchange/config"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/models"
	"Gin_postgres_redis_book_exchange/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Srv struct {
	Repo    *db.Repo
	Books   *cache.BookListStore
	Uploads *storage.Disk
	Log     *zap.Logger
	Cfg     config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    db.NewRepo(a.DB),
		Books:   a.Books,
		Uploads: a.Uploads,
		Log:     a.Log,
		Cfg:     a.Config,
	}
}

// --- helpers ---

func msg(c *gin.Context, status int, message string) {
	c.JSON(status, app.H{"message": message})
}

// serverError 记录错误与堆栈，对外只给通用信息
func (s *Srv) serverError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	s.Log.Error(message,
		zap.Error(err),
		zap.String("route", c.FullPath()),
		zap.Stack("stack"),
	)
	msg(c, http.StatusInternalServerError, message)
}

// notFoundOr ErrNotFound → 404，其余 → 500
func (s *Srv) notFoundOr(c *gin.Context, err error, notFoundMsg, serverMsg string) {
	if errors.Is(err, db.ErrNotFound) {
		msg(c, http.StatusNotFound, notFoundMsg)
		return
	}
	s.serverError(c, serverMsg, err)
}

// bookChanged 写操作后的收尾：列表缓存失效 + 追加历史。两者失败都只记日志。
func (s *Srv) bookChanged(ctx context.Context, bookID string, kind models.EventKind, actorID *string, detail string) {
	if err := s.Books.Invalidate(ctx); err != nil {
		s.Log.Warn("invalidate book list cache", zap.Error(err))
	}
	if kind == "" {
		return
	}
	if _, err := s.Repo.LogBookEvent(ctx, bookID, kind, actorID, detail); err != nil {
		s.Log.Warn("record book event",
			zap.String("bookID", bookID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

// releaseCover 书不再引用某封面后调用：只删本地上传、且已无其它书引用的文件
func (s *Srv) releaseCover(ctx context.Context, cover string) {
	if !s.Uploads.Owns(cover) {
		return
	}
	inUse, err := s.Repo.CoverInUse(ctx, cover)
	if err != nil {
		s.Log.Warn("check cover usage", zap.String("path", cover), zap.Error(err))
		return
	}
	if inUse {
		return
	}
	if err := s.Uploads.Remove(cover); err != nil {
		s.Log.Warn("remove cover", zap.String("path", cover), zap.Error(err))
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptyToNil 表单里的空字符串按“未填写”处理
func emptyToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
