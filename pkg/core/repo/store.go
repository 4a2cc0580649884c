package repo

import "context"

// Store specifies the common persistence operations for entities of
// type E which are identified by keys of type K. Entity specific
// queryer interfaces, such as BooksQueryer, can embed the Store
// interface with proper type arguments, so all repositories expose
// the same fundamental operations uniformly and extend them with
// entity specific operations as needed.
type Store[E any, K comparable] interface {
	// Save persists the entity instance. An entity with a zero key
	// does not exist in the repository yet and will be inserted,
	// taking a fresh key. An entity with a non-zero key replaces all
	// stored fields of the correspondingly identified entity, which
	// must exist beforehand. The persisted entity, including its
	// possibly fresh key, will be returned.
	Save(ctx context.Context, entity E) (*E, error)

	// FindByID returns the entity which is identified by the given
	// key, if any.
	FindByID(ctx context.Context, id K) (*E, error)

	// FindAll returns all stored entities. In absence of entities,
	// an empty non-nil slice will be returned.
	FindAll(ctx context.Context) ([]E, error)

	// ExistsByID reports whether some entity is identified by the
	// given key, without fetching its remaining fields.
	ExistsByID(ctx context.Context, id K) (bool, error)

	// DeleteByID removes the entity which is identified by the given
	// key. Absence of such an entity is reported as an error.
	DeleteByID(ctx context.Context, id K) error
}
