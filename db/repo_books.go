package db

import (
	"context"
	"fmt"
	"strings"

	"Gin_postgres_redis_book_exchange/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Books

func (r *Repo) withPeople(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("Owner").Preload("ClaimedBy")
}

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.StatusAvailable
	}
	if err := r.DB.WithContext(ctx).Omit("Owner", "ClaimedBy").Create(b).Error; err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *Repo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.withPeople(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// likePattern 转义通配符，输入按字面子串匹配
func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

// ListBooks 标题/类型/地点：大小写不敏感子串匹配，均可选，AND 组合
func (r *Repo) ListBooks(ctx context.Context, f models.BookFilter) ([]models.Book, error) {
	tx := r.withPeople(ctx).Model(&models.Book{})
	for col, v := range map[string]string{"title": f.Title, "genre": f.Genre, "location": f.Location} {
		if strings.TrimSpace(v) == "" {
			continue
		}
		tx = tx.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col), likePattern(v))
	}

	books := []models.Book{}
	if err := tx.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *Repo) ListBooksByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	books := []models.Book{}
	err := r.withPeople(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

func (r *Repo) ListBooksClaimedBy(ctx context.Context, userID string) ([]models.Book, error) {
	books := []models.Book{}
	err := r.withPeople(ctx).
		Where("claimed_by_id = ?", userID).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

// BookUpdate 整表单编辑；nil 指针表示清空可选字段
type BookUpdate struct {
	Title       string
	Author      string
	Genre       *string
	Location    string
	ContactInfo string
	CoverImage  *string
	Status      models.BookStatus // 为空则不改
}

func (r *Repo) UpdateBook(ctx context.Context, id string, in BookUpdate) (*models.Book, error) {
	fields := map[string]any{
		"title":        in.Title,
		"author":       in.Author,
		"genre":        in.Genre,
		"location":     in.Location,
		"contact_info": in.ContactInfo,
		"cover_image":  in.CoverImage,
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	return r.updateBook(ctx, id, fields)
}

func (r *Repo) SetBookStatus(ctx context.Context, id string, status models.BookStatus) (*models.Book, error) {
	return r.updateBook(ctx, id, map[string]any{"status": status})
}

// ClaimBook 只写外键：不检查是否已被认领，也不改状态（后到者覆盖）
func (r *Repo) ClaimBook(ctx context.Context, id, userID string) (*models.Book, error) {
	return r.updateBook(ctx, id, map[string]any{"claimed_by_id": userID})
}

func (r *Repo) UnclaimBook(ctx context.Context, id string) (*models.Book, error) {
	return r.updateBook(ctx, id, map[string]any{"claimed_by_id": nil})
}

// updateBook 单条 UPDATE（各自隐式事务），再读回带关联的视图
func (r *Repo) updateBook(ctx context.Context, id string, fields map[string]any) (*models.Book, error) {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindBookByID(ctx, id)
}

// DeleteBook 返回被删的行，调用方据此清理封面文件（与删库互不保证）
func (r *Repo) DeleteBook(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	// 显式删除历史（保险起见，外键未级联时也能删干净）
	if err := r.DB.WithContext(ctx).Where("book_id = ?", id).Delete(&models.BookEvent{}).Error; err != nil {
		return nil, err
	}
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &b, nil
}

// CoverInUse 是否还有书引用该封面路径
func (r *Repo) CoverInUse(ctx context.Context, cover string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("cover_image = ?", cover).
		Count(&n).Error
	return n > 0, err
}
