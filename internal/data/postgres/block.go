package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const blockTable = "last_blocks"
const chainCol = "src_chain"

type block struct {
	db    *pgdb.DB
	chain string
}

func (q block) Set(id uint64) error {
	stmt := squirrel.Insert(blockTable).
		Columns("id", chainCol).Values(id, q.chain).
		Suffix("ON CONFLICT (" + chainCol + ") DO UPDATE SET id = EXCLUDED.id")
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to set last block")
}

func (q block) Get() (*uint64, error) {
	var result struct {
		ID uint64 `db:"id"`
	}
	stmt := squirrel.Select("id").From(blockTable).Where(squirrel.Eq{chainCol: q.chain})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select last block")
	}

	return &result.ID, nil
}
