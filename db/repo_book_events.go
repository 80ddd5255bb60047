package db

import (
	"Gin_postgres_redis_book_exchange/models"
	"context"
	"fmt"
)

func (r *Repo) LogBookEvent(ctx context.Context, bookID string, kind models.EventKind, actorID *string, detail string) (*models.BookEvent, error) {
	ev := &models.BookEvent{
		BookID:  bookID,
		Kind:    kind,
		ActorID: actorID,
		Detail:  detail,
	}
	if err := r.DB.WithContext(ctx).Omit("Book").Create(ev).Error; err != nil {
		return nil, fmt.Errorf("insert book event: %w", err)
	}
	return ev, nil
}

func (r *Repo) ListBookEvents(ctx context.Context, bookID string) ([]models.BookEvent, error) {
	evs := []models.BookEvent{}
	err := r.DB.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Find(&evs).Error
	return evs, err
}
