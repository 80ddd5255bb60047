// app/bootstrap.go
package app

import (
	"context"
	"fmt"

	"Gin_postgres_redis_book_exchange/db"
	"Gin_postgres_redis_book_exchange/models"

	"go.uber.org/zap"
)

const DemoOwnerEmail = "owner@example.com"

var demoBooks = []struct{ title, author, genre, location string }{
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", "Portland"},
	{"Middlemarch", "George Eliot", "Classic", "London"},
	{"The Name of the Rose", "Umberto Eco", "Mystery", "Bologna"},
}

// BootstrapDemoData 库里没有任何用户时，创建一个演示 Owner 和几本书。
// 返回是否写入了数据。
func BootstrapDemoData(ctx context.Context, repo *db.Repo, log *zap.Logger) (bool, error) {
	n, err := repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Info("demo seed skipped: users already exist", zap.Int64("users", n))
		return false, nil
	}

	owner := &models.User{
		Name:     "Demo Owner",
		Email:    DemoOwnerEmail,
		Password: "password",
		Mobile:   "000-000-0000",
		Role:     models.RoleOwner,
	}
	if err := repo.CreateUser(ctx, owner); err != nil {
		return false, fmt.Errorf("create demo owner: %w", err)
	}

	for _, d := range demoBooks {
		genre := d.genre
		b := &models.Book{
			Title:       d.title,
			Author:      d.author,
			Genre:       &genre,
			Location:    d.location,
			ContactInfo: owner.Email,
			OwnerID:     owner.ID,
		}
		if err := repo.CreateBook(ctx, b); err != nil {
			return false, fmt.Errorf("create demo book %q: %w", d.title, err)
		}
		if _, err := repo.LogBookEvent(ctx, b.ID, models.EventListed, &owner.ID, "seed"); err != nil {
			log.Warn("demo book event", zap.Error(err))
		}
	}

	log.Info("[BOOTSTRAP] demo data created",
		zap.String("email", owner.Email),
		zap.String("password", owner.Password),
		zap.Int("books", len(demoBooks)),
	)
	return true, nil
}
