package db

import (
	"Gin_postgres_redis_book_exchange/config"
	"Gin_postgres_redis_book_exchange/models"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open 按驱动打开连接；TranslateError 让唯一约束冲突变成 gorm.ErrDuplicatedKey。
// SQL 日志走 log（可为 nil）。
func Open(cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	return conn, nil
}

// ConnectDB 打开并迁移，失败直接退出
func ConnectDB(cfg config.DBConfig, log *zap.Logger) *gorm.DB {
	conn, err := Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := Migrate(conn); err != nil {
		log.Fatal("failed to migrate models", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.Driver))
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.BookEvent{}); err != nil {
		return err
	}

	// 列表过滤走 LOWER(col) LIKE，给三个过滤列建表达式索引
	for _, col := range []string{"title", "genre", "location"} {
		if err := db.Exec(fmt.Sprintf(`
		  CREATE INDEX IF NOT EXISTS %s_lower_%s_idx
		  ON %s (LOWER(%s));
		`, models.BookTable, col, models.BookTable, col)).Error; err != nil {
			return err
		}
	}

	// 仪表盘按 owner / claimant 拉取，按时间倒序
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_owner_createdat_desc
	  ON %s (owner_id, created_at DESC);
	`, models.BookTable, models.BookTable)).Error; err != nil {
		return err
	}

	return nil
}
