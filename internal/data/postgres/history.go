package postgres

import (
	"github.com/Masterminds/squirrel"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

const historyTable = "slippage_history"

type history struct {
	db *pgdb.DB
}

func (q history) Append(orderID uint64, e data.SlippageEntry) error {
	stmt := squirrel.Insert(historyTable).SetMap(map[string]interface{}{
		"order_id":          orderID,
		"ts":                e.Timestamp,
		"slippage":          e.Slippage,
		"volatility_score":  e.VolatilityScore,
		"cross_chain_delay": e.CrossChainDelay,
	})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to append slippage history entry")
}

func (q history) Select(orderID uint64) ([]data.SlippageEntry, error) {
	var rows []struct {
		Timestamp       int64  `db:"ts"`
		Slippage        uint64 `db:"slippage"`
		VolatilityScore uint64 `db:"volatility_score"`
		CrossChainDelay uint64 `db:"cross_chain_delay"`
	}
	stmt := squirrel.Select("ts", "slippage", "volatility_score", "cross_chain_delay").
		From(historyTable).Where(squirrel.Eq{"order_id": orderID}).OrderBy("id")
	if err := q.db.Select(&rows, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select slippage history")
	}

	entries := make([]data.SlippageEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, data.SlippageEntry{
			Timestamp:       r.Timestamp,
			Slippage:        r.Slippage,
			VolatilityScore: r.VolatilityScore,
			CrossChainDelay: r.CrossChainDelay,
		})
	}
	return entries, nil
}
