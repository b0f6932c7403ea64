package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/smb_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the sqlite-backed repositories onto one handle.
// Closing the provider closes db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db}
	return portsrepo.RepositoryProvider{
		AccountRepo: &AccountRepository{BaseRepository: base},
		JournalRepo: &JournalRepository{BaseRepository: base},
		Closer:      db,
	}
}
