// controllers/book_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// pathID 非 UUID 的 id 不可能存在，直接 404（Postgres 的 uuid 列会对非法输入报错）
func pathID(c *gin.Context, name, notFoundMsg string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		msg(c, http.StatusNotFound, notFoundMsg)
		return "", false
	}
	return id, true
}

type createBookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Genre       *string `json:"genre"`
	Location    string  `json:"location" binding:"required"`
	ContactInfo string  `json:"contactInfo" binding:"required"`
	OwnerID     string  `json:"ownerId" binding:"required"`
	CoverImage  *string `json:"coverImage"`
}

// POST /books（仅 Owner）
func (bc *BookController) CreateBook(c *gin.Context) {
	var in createBookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		msg(c, http.StatusBadRequest, "Missing fields")
		return
	}
	ctx := c.Request.Context()

	var owner *models.User
	if _, err := uuid.Parse(in.OwnerID); err == nil {
		u, err := bc.Repo.FindUserByID(ctx, in.OwnerID)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			bc.serverError(c, "Server error", err)
			return
		}
		owner = u
	}
	if owner == nil || owner.Role != models.RoleOwner {
		msg(c, http.StatusForbidden, "Only Owners can add books")
		return
	}

	b := &models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       emptyToNil(in.Genre),
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
		CoverImage:  emptyToNil(in.CoverImage),
		OwnerID:     owner.ID,
	}
	if err := bc.Repo.CreateBook(ctx, b); err != nil {
		bc.serverError(c, "Server error", err)
		return
	}
	bc.bookChanged(ctx, b.ID, models.EventListed, &owner.ID, "")

	created, err := bc.Repo.FindBookByID(ctx, b.ID)
	if err != nil {
		created = b
	}
	c.JSON(http.StatusCreated, app.H{"message": "Book listed successfully", "book": created})
}

// GET /books?title=&genre=&location=
func (bc *BookController) ListBooks(c *gin.Context) {
	var f models.BookFilter
	_ = c.ShouldBindQuery(&f)
	ctx := c.Request.Context()

	books, gen, ok := bc.Books.Get(ctx, f)
	if ok {
		c.JSON(http.StatusOK, books)
		return
	}

	books, err := bc.Repo.ListBooks(ctx, f)
	if err != nil {
		bc.serverError(c, "Error fetching books", err)
		return
	}
	if err := bc.Books.Set(ctx, gen, f, books); err != nil {
		bc.Log.Warn("cache book list", zap.Error(err))
	}
	c.JSON(http.StatusOK, books)
}

// GET /books/:id
func (bc *BookController) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error fetching book")
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /books/owner/:userId
func (bc *BookController) ListOwnedBooks(c *gin.Context) {
	uid := c.Param("userId")
	if _, err := uuid.Parse(uid); err != nil {
		c.JSON(http.StatusOK, []models.Book{})
		return
	}
	books, err := bc.Repo.ListBooksByOwner(c.Request.Context(), uid)
	if err != nil {
		bc.serverError(c, "Error fetching books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GET /books/claimed/:userId
func (bc *BookController) ListClaimedBooks(c *gin.Context) {
	uid := c.Param("userId")
	if _, err := uuid.Parse(uid); err != nil {
		c.JSON(http.StatusOK, []models.Book{})
		return
	}
	books, err := bc.Repo.ListBooksClaimedBy(c.Request.Context(), uid)
	if err != nil {
		bc.serverError(c, "Error fetching books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

type updateBookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Genre       *string `json:"genre"`
	Location    string  `json:"location" binding:"required"`
	ContactInfo string  `json:"contactInfo" binding:"required"`
	CoverImage  *string `json:"coverImage"`
	Status      string  `json:"status"`
	OwnerID     string  `json:"ownerId"` // 可选：带上则必须与库中一致
}

// PUT /books/:id 整表单编辑
func (bc *BookController) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	var in updateBookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		msg(c, http.StatusBadRequest, "Missing fields")
		return
	}
	status := models.BookStatus(in.Status)
	if in.Status != "" && !status.Valid() {
		msg(c, http.StatusBadRequest, "Invalid status value")
		return
	}
	ctx := c.Request.Context()

	current, err := bc.Repo.FindBookByID(ctx, id)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error updating book")
		return
	}
	if in.OwnerID != "" && in.OwnerID != current.OwnerID {
		msg(c, http.StatusForbidden, "Only the owner can edit this book")
		return
	}

	updated, err := bc.Repo.UpdateBook(ctx, id, db.BookUpdate{
		Title:       in.Title,
		Author:      in.Author,
		Genre:       emptyToNil(in.Genre),
		Location:    in.Location,
		ContactInfo: in.ContactInfo,
		CoverImage:  emptyToNil(in.CoverImage),
		Status:      status,
	})
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error updating book")
		return
	}

	// 换了封面：旧文件没人用了就删掉
	if old := current.CoverImage; old != nil && (updated.CoverImage == nil || *updated.CoverImage != *old) {
		bc.releaseCover(ctx, *old)
	}

	bc.bookChanged(ctx, id, models.EventUpdated, strPtr(in.OwnerID), "")
	c.JSON(http.StatusOK, app.H{"message": "Book updated", "book": updated})
}

// DELETE /books/:id
// 先删库再删封面文件，两步互不回滚；封面仍被其它书引用时保留
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	var in struct {
		OwnerID string `json:"ownerId" form:"ownerId"`
	}
	_ = c.ShouldBindQuery(&in)
	if in.OwnerID == "" && c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&in)
	}
	ctx := c.Request.Context()

	if in.OwnerID != "" {
		current, err := bc.Repo.FindBookByID(ctx, id)
		if err != nil {
			bc.notFoundOr(c, err, "Book not found", "Error deleting book")
			return
		}
		if current.OwnerID != in.OwnerID {
			msg(c, http.StatusForbidden, "Only the owner can delete this book")
			return
		}
	}

	deleted, err := bc.Repo.DeleteBook(ctx, id)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error deleting book")
		return
	}
	if deleted.CoverImage != nil {
		bc.releaseCover(ctx, *deleted.CoverImage)
	}

	bc.bookChanged(ctx, id, "", nil, "")
	msg(c, http.StatusOK, "Book deleted successfully")
}

// PATCH /books/:id/status
func (bc *BookController) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	_ = c.ShouldBindJSON(&in)
	status := models.BookStatus(in.Status)
	if !status.Valid() {
		msg(c, http.StatusBadRequest, "Invalid status value")
		return
	}
	ctx := c.Request.Context()

	b, err := bc.Repo.SetBookStatus(ctx, id, status)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error updating book status")
		return
	}
	bc.bookChanged(ctx, id, models.EventStatus, nil, string(status))
	c.JSON(http.StatusOK, app.H{"message": "Book status updated", "book": b})
}

// PATCH /books/:id/claim
// 不检查是否已被认领、也不改状态：后到的认领直接覆盖
func (bc *BookController) Claim(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	var in struct {
		UserID string `json:"userId"`
	}
	_ = c.ShouldBindJSON(&in)
	if strings.TrimSpace(in.UserID) == "" {
		msg(c, http.StatusBadRequest, "User ID is required to claim a book")
		return
	}
	ctx := c.Request.Context()

	if _, err := uuid.Parse(in.UserID); err != nil {
		msg(c, http.StatusNotFound, "User not found")
		return
	}
	if _, err := bc.Repo.FindUserByID(ctx, in.UserID); err != nil {
		bc.notFoundOr(c, err, "User not found", "Internal server error")
		return
	}

	b, err := bc.Repo.ClaimBook(ctx, id, in.UserID)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Internal server error")
		return
	}
	bc.bookChanged(ctx, id, models.EventClaimed, &in.UserID, "")
	c.JSON(http.StatusOK, app.H{"message": "Book claimed successfully", "book": b})
}

// PATCH /books/:id/unclaim
func (bc *BookController) Unclaim(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	prev, err := bc.Repo.FindBookByID(ctx, id)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Internal server error")
		return
	}
	b, err := bc.Repo.UnclaimBook(ctx, id)
	if err != nil {
		bc.notFoundOr(c, err, "Book not found", "Internal server error")
		return
	}
	bc.bookChanged(ctx, id, models.EventUnclaimed, prev.ClaimedByID, "")
	c.JSON(http.StatusOK, app.H{"message": "Book unclaimed successfully", "book": b})
}

// GET /books/:id/events
func (bc *BookController) ListEvents(c *gin.Context) {
	id, ok := pathID(c, "id", "Book not found")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := bc.Repo.FindBookByID(ctx, id); err != nil {
		bc.notFoundOr(c, err, "Book not found", "Error fetching book events")
		return
	}
	evs, err := bc.Repo.ListBookEvents(ctx, id)
	if err != nil {
		bc.serverError(c, "Error fetching book events", err)
		return
	}
	c.JSON(http.StatusOK, app.H{"events": evs})
}
