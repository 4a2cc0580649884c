package postgres

import "github.com/momeni/bookshelf/pkg/core/repo"

type Queryer interface {
	*Conn | *Tx
	repo.Queryer
}
