package repo

import "github.com/momeni/bookshelf/pkg/core/model"

type BooksConnQueryer interface {
	BooksQueryer
}

type BooksTxQueryer interface {
	BooksQueryer
}

type BooksQueryer interface {
	Store[model.Book, int64]
}

type Books interface {
	Conn(Conn) BooksConnQueryer
	Tx(Tx) BooksTxQueryer
}
