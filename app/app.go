package app

import (
	"Gin_postgres_redis_book_exchange/cache"
	"Gin_postgres_redis_book_exchange/config"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/storage"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client // 未配置 REDIS_ADDR 时为 nil
	Log    *zap.Logger
	Config config.Config

	Books   *cache.BookListStore
	Uploads *storage.Disk
}

// MustNew 连接数据库 / Redis、准备上传目录，任何一步失败直接退出
func MustNew(cfg config.Config, log *zap.Logger) *App {
	// --- DB ---
	dbConn := db.ConnectDB(cfg.DB, log)

	// --- Redis（可选）---
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
	} else {
		log.Info("redis disabled: list cache and login throttle off")
	}

	uploads, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Fatal("uploads", zap.Error(err))
	}

	return New(cfg, log, dbConn, rdb, uploads)
}

// New 用现成的依赖组装 App（测试直接调用）
func New(cfg config.Config, log *zap.Logger, dbConn *gorm.DB, rdb *redis.Client, uploads *storage.Disk) *App {
	if cfg.GinMode == gin.ReleaseMode || cfg.GinMode == gin.TestMode {
		gin.SetMode(cfg.GinMode)
	}

	// --- Gin ---
	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	useCORS(r, cfg.WebOrigin)
	// multipart 超出部分落临时文件，避免整块读进内存
	r.MaxMultipartMemory = 8 << 20

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Log: log, Config: cfg,
		Books:   cache.NewBookListStore(rdb, cfg.ListCacheTTL),
		Uploads: uploads,
	}
}

func (a *App) Close() {
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Log.Sync()
}
