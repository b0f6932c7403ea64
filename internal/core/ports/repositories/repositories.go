package repositories

import "io"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryFacade

	// Closer releases the underlying storage handle. May be nil.
	Closer io.Closer
}

// Close releases the storage handle if one is set.
func (p RepositoryProvider) Close() error {
	if p.Closer == nil {
		return nil
	}
	return p.Closer.Close()
}
