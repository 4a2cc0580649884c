package booksrp

import (
	"context"

	"github.com/momeni/bookshelf/pkg/adapter/db/postgres"
	"github.com/momeni/bookshelf/pkg/core/model"
	"github.com/momeni/bookshelf/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (books *Repo) Conn(c repo.Conn) repo.BooksConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Save(ctx context.Context, b model.Book) (*model.Book, error) {
	return Save(ctx, cq.Conn, b)
}

func (cq connQueryer) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return Find(ctx, cq.Conn, id)
}

func (cq connQueryer) FindAll(ctx context.Context) ([]model.Book, error) {
	return FindAll(ctx, cq.Conn)
}

func (cq connQueryer) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, cq.Conn, id)
}

func (cq connQueryer) DeleteByID(ctx context.Context, id int64) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (books *Repo) Tx(tx repo.Tx) repo.BooksTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Save(ctx context.Context, b model.Book) (*model.Book, error) {
	return Save(ctx, tq.Tx, b)
}

func (tq txQueryer) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return Find(ctx, tq.Tx, id)
}

func (tq txQueryer) FindAll(ctx context.Context) ([]model.Book, error) {
	return FindAll(ctx, tq.Tx)
}

func (tq txQueryer) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return Exists(ctx, tq.Tx, id)
}

func (tq txQueryer) DeleteByID(ctx context.Context, id int64) error {
	return Delete(ctx, tq.Tx, id)
}
