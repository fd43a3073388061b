package postgres

import (
	"database/sql"
	"math/big"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

const ordersTable = "orders"
const counterTable = "order_counter"

type orders struct {
	db *pgdb.DB
}

// orderRow mirrors data.Order with DB-friendly column types; u128 amounts are
// kept as decimal strings.
type orderRow struct {
	OrderID              uint64 `structs:"order_id" db:"order_id"`
	Maker                string `structs:"maker" db:"maker"`
	TokenIn              string `structs:"token_in" db:"token_in"`
	TokenOut             string `structs:"token_out" db:"token_out"`
	AmountIn             string `structs:"amount_in" db:"amount_in"`
	BasePrice            string `structs:"base_price" db:"base_price"`
	CurrentSlippage      uint64 `structs:"current_slippage" db:"current_slippage"`
	MaxSlippageDeviation uint64 `structs:"max_slippage_deviation" db:"max_slippage_deviation"`
	TargetChainID        uint64 `structs:"target_chain_id" db:"target_chain_id"`
	Hashlock             string `structs:"hashlock" db:"hashlock"`
	Timelock             uint64 `structs:"timelock" db:"timelock"`
	Status               uint8  `structs:"status" db:"status"`
	CreatedAt            int64  `structs:"created_at" db:"created_at"`
	LastSlippageUpdate   int64  `structs:"last_slippage_update" db:"last_slippage_update"`
	FillAttempts         uint64 `structs:"fill_attempts" db:"fill_attempts"`
}

func toRow(o data.Order) orderRow {
	return orderRow{
		OrderID:              o.OrderID,
		Maker:                o.Maker,
		TokenIn:              o.TokenIn,
		TokenOut:             o.TokenOut,
		AmountIn:             o.AmountIn.String(),
		BasePrice:            o.BasePrice.String(),
		CurrentSlippage:      o.CurrentSlippage,
		MaxSlippageDeviation: o.MaxSlippageDeviation,
		TargetChainID:        o.TargetChainID,
		Hashlock:             o.Hashlock,
		Timelock:             o.Timelock,
		Status:               uint8(o.Status),
		CreatedAt:            o.CreatedAt,
		LastSlippageUpdate:   o.LastSlippageUpdate,
		FillAttempts:         o.FillAttempts,
	}
}

func (r orderRow) toOrder() (data.Order, error) {
	amountIn, ok := new(big.Int).SetString(r.AmountIn, 10)
	if !ok {
		return data.Order{}, errors.Errorf("corrupted amount_in value %q", r.AmountIn)
	}
	basePrice, ok := new(big.Int).SetString(r.BasePrice, 10)
	if !ok {
		return data.Order{}, errors.Errorf("corrupted base_price value %q", r.BasePrice)
	}
	return data.Order{
		OrderID:              r.OrderID,
		Maker:                r.Maker,
		TokenIn:              r.TokenIn,
		TokenOut:             r.TokenOut,
		AmountIn:             amountIn,
		BasePrice:            basePrice,
		CurrentSlippage:      r.CurrentSlippage,
		MaxSlippageDeviation: r.MaxSlippageDeviation,
		TargetChainID:        r.TargetChainID,
		Hashlock:             r.Hashlock,
		Timelock:             r.Timelock,
		Status:               data.Status(r.Status),
		CreatedAt:            r.CreatedAt,
		LastSlippageUpdate:   r.LastSlippageUpdate,
		FillAttempts:         r.FillAttempts,
	}, nil
}

func (q orders) NextID() (uint64, error) {
	var result struct {
		ID uint64 `db:"id"`
	}
	stmt := squirrel.Update(counterTable).
		Set("next_id", squirrel.Expr("next_id + 1")).
		Suffix("RETURNING next_id - 1 AS id")
	if err := q.db.Get(&result, stmt); err != nil {
		return 0, errors.Wrap(err, "failed to allocate next order id")
	}
	return result.ID, nil
}

func (q orders) Insert(o data.Order) error {
	stmt := squirrel.Insert(ordersTable).SetMap(structs.Map(toRow(o)))
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert order")
}

func (q orders) Update(o data.Order) error {
	stmt := squirrel.Update(ordersTable).
		SetMap(map[string]interface{}{
			"current_slippage":     o.CurrentSlippage,
			"status":               uint8(o.Status),
			"last_slippage_update": o.LastSlippageUpdate,
			"fill_attempts":        o.FillAttempts,
		}).
		Where(squirrel.Eq{"order_id": o.OrderID})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update order")
}

func (q orders) Get(orderID uint64) (*data.Order, error) {
	return q.get(squirrel.Eq{"order_id": orderID})
}

func (q orders) GetByHashlock(hashlock string) (*data.Order, error) {
	return q.get(squirrel.Eq{"hashlock": hashlock})
}

func (q orders) get(where squirrel.Eq) (*data.Order, error) {
	var row orderRow
	stmt := squirrel.Select("*").From(ordersTable).Where(where)
	if err := q.db.Get(&row, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select order")
	}

	o, err := row.toOrder()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (q orders) SelectByMaker(maker string) ([]uint64, error) {
	var rows []struct {
		OrderID uint64 `db:"order_id"`
	}
	stmt := squirrel.Select("order_id").From(ordersTable).
		Where(squirrel.Eq{"maker": maker}).OrderBy("order_id")
	if err := q.db.Select(&rows, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select maker orders")
	}

	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.OrderID)
	}
	return ids, nil
}

func (q orders) SelectByStatus(st data.Status) ([]data.Order, error) {
	var rows []orderRow
	stmt := squirrel.Select("*").From(ordersTable).
		Where(squirrel.Eq{"status": uint8(st)}).OrderBy("order_id")
	if err := q.db.Select(&rows, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select orders by status")
	}

	result := make([]data.Order, 0, len(rows))
	for _, r := range rows {
		o, err := r.toOrder()
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func (q orders) Count() (uint64, error) {
	var result struct {
		Count uint64 `db:"count"`
	}
	stmt := squirrel.Select("COUNT(*) AS count").From(ordersTable)
	if err := q.db.Get(&result, stmt); err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}
	return result.Count, nil
}
