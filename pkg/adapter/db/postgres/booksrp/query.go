package booksrp

import (
	"context"
	"fmt"

	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/core/cerr"
	"github.com/momeni/bookshelf/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gBook struct {
	ID              int64 `gorm:"primaryKey"`
	Title           string
	Author          string
	ISBN            string `gorm:"column:isbn"`
	PublicationYear int
	Available       bool
}

func (gb *gBook) TableName() string {
	return "books"
}

func (gb *gBook) Model() *model.Book {
	return &model.Book{
		ID:              gb.ID,
		Title:           gb.Title,
		Author:          gb.Author,
		ISBN:            gb.ISBN,
		PublicationYear: gb.PublicationYear,
		Available:       gb.Available,
	}
}

func Save[Q postgres.Queryer](ctx context.Context, q Q, b model.Book) (*model.Book, error) {
	if b.ID == 0 {
		return create(ctx, q, b)
	}
	return update(ctx, q, b)
}

func create[Q postgres.Queryer](ctx context.Context, q Q, b model.Book) (*model.Book, error) {
	gdb := q.GORM(ctx)
	gb := &gBook{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Available:       b.Available,
	}
	if err := gdb.Create(gb).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gb.Model(), nil
}

func update[Q postgres.Queryer](ctx context.Context, q Q, b model.Book) (*model.Book, error) {
	gdb := q.GORM(ctx)
	var gbs []gBook
	res := gdb.Model(&gbs).Clauses(clause.Returning{}).Select(
		"title", "author", "isbn", "publication_year", "available",
	).Where(
		"id=?", b.ID,
	).Updates(gBook{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Available:       b.Available,
	})
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gbs[0].Model(), nil
}

func Find[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Book, error) {
	gdb := q.GORM(ctx)
	var gbs []gBook
	if err := gdb.Where("id=?", id).Find(&gbs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gbs[0].Model(), nil
}

func FindAll[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Book, error) {
	gdb := q.GORM(ctx)
	var gbs []gBook
	if err := gdb.Order("id").Find(&gbs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bl := make([]model.Book, len(gbs))
	for i := range gbs {
		bl[i] = *gbs[i].Model()
	}
	return bl, nil
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, id int64) (bool, error) {
	gdb := q.GORM(ctx)
	var n int64
	err := gdb.Model(&gBook{}).Where("id=?", id).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id int64) error {
	gdb := q.GORM(ctx)
	res := gdb.Where("id=?", id).Delete(&gBook{})
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}
