// Package postgres implements the data contracts on top of pgdb.
package postgres

import (
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"gitlab.com/distributed_lab/kit/pgdb"
)

type storage struct {
	db       *pgdb.DB
	srcChain string
}

// NewStorage returns postgres-backed storage. chainName discriminates the
// last_blocks row when several engine instances share one database.
func NewStorage(db *pgdb.DB, chainName string) data.Storage {
	return &storage{db: db, srcChain: chainName}
}

func (s *storage) Orders() data.Orders       { return orders{db: s.db} }
func (s *storage) History() data.History     { return history{db: s.db} }
func (s *storage) LastBlock() data.LastBlock { return block{db: s.db, chain: s.srcChain} }

func (s *storage) Transaction(fn func() error) error {
	return s.db.Transaction(fn)
}
