package controllers

import (
	"errors"
	"net/http"
	"strings"

	"Gin_postgres_redis_book_exchange/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadController struct{ *Srv }

func NewUploadController(s *Srv) *UploadController { return &UploadController{Srv: s} }

// 表单字段名与前端 FormData 一致
const uploadField = "image"

// POST /books/upload
// 只看声明的 Content-Type 前缀和大小，不做内容校验
func (uc *UploadController) Upload(c *gin.Context) {
	limit := uc.Cfg.MaxUploadBytes
	// 整个请求体上限：文件上限 + 1MB 给 multipart 头和其它字段
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			msg(c, http.StatusBadRequest, "File too large")
			return
		}
		msg(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if fh.Size > limit {
		msg(c, http.StatusBadRequest, "File too large")
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		msg(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	f, err := fh.Open()
	if err != nil {
		uc.serverError(c, "Error uploading file", err)
		return
	}
	defer f.Close()

	url, err := uc.Uploads.Save(fh.Filename, f)
	if err != nil {
		uc.serverError(c, "Error uploading file", err)
		return
	}

	uc.Log.Info("cover uploaded", zap.String("path", url), zap.Int64("size", fh.Size))
	c.JSON(http.StatusOK, app.H{"imageUrl": url})
}
