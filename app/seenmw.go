// app/seenmw.go
package app

import (
	"Gin_postgres_redis_book_exchange/db"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginUserKey 登录成功后 handler 把用户 ID 放进 Context
const LoginUserKey = "loginUserID"

// TouchLastLogin 在登录 handler 之后运行：成功登录则记录 lastLoginAt / loginCount。
// 配置了 Redis 时用 SETNX 节流，同一用户 throttle 内只写一次库。
func TouchLastLogin(repo *db.Repo, rdb *redis.Client, throttle time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		uid := c.GetString(LoginUserKey)
		if uid == "" {
			return
		}

		if rdb != nil && throttle > 0 {
			key := "user:lastlogin:" + uid
			ok, err := rdb.SetNX(c, key, "1", throttle).Result()
			if err == nil && !ok {
				return
			}
			// Redis 出错时照常写库
		}
		if err := repo.TouchUserLogin(c, uid); err != nil {
			log.Warn("touch last login", zap.String("userID", uid), zap.Error(err)) // 不影响响应
		}
	}
}
