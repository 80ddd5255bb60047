package routes

import (
	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/controllers"
	"Gin_postgres_redis_book_exchange/storage"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	uc := controllers.GetUserController(s)
	bookCtl := controllers.NewBookController(s)
	uploadCtl := controllers.NewUploadController(s)

	loginMW := app.TouchLastLogin(s.Repo, a.RDB, a.Config.LoginTouchThrottle, a.Log)

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })

	// 上传的封面静态访问
	r.Static(strings.TrimSuffix(storage.PublicPrefix, "/"), a.Uploads.Dir)

	// ------------------------------
	// 注册 / 登录（无会话，身份由客户端自己保存）
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/register", uc.Register)
		auth.POST("/login", loginMW, uc.Login)
	}

	r.GET("/users/:id", uc.GetUser)

	// ------------------------------
	// 书籍：浏览 / 发布 / 编辑 / 认领
	// ------------------------------
	books := r.Group("/books")
	{
		books.GET("", bookCtl.ListBooks)
		books.POST("", bookCtl.CreateBook)
		books.POST("/upload", uploadCtl.Upload)

		// 仪表盘
		books.GET("/owner/:userId", bookCtl.ListOwnedBooks)
		books.GET("/claimed/:userId", bookCtl.ListClaimedBooks)

		books.GET("/:id", bookCtl.GetBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)
		books.GET("/:id/events", bookCtl.ListEvents)

		// 三个独立的状态动作，彼此不联动
		books.PATCH("/:id/status", bookCtl.UpdateStatus)
		books.PATCH("/:id/claim", bookCtl.Claim)
		books.PATCH("/:id/unclaim", bookCtl.Unclaim)
	}
}
