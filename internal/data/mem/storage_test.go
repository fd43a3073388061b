package mem

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

func order(id uint64, maker, hl string) data.Order {
	return data.Order{
		OrderID:   id,
		Maker:     maker,
		TokenIn:   "near",
		TokenOut:  "0xabc",
		AmountIn:  big.NewInt(1000),
		BasePrice: big.NewInt(1),
		Hashlock:  hl,
		Status:    data.StatusActive,
	}
}

func TestOrdersIndexes(t *testing.T) {
	s := NewStorage()
	q := s.Orders()

	id, err := q.NextID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	require.NoError(t, q.Insert(order(1, "alice", "aa")))
	require.NoError(t, q.Insert(order(2, "alice", "bb")))
	require.NoError(t, q.Insert(order(3, "bob", "cc")))

	got, err := q.GetByHashlock("bb")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.OrderID)

	ids, err := q.SelectByMaker("alice")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)

	n, err := q.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	missing, err := q.Get(99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionRollback(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Orders().Insert(order(1, "alice", "aa")))

	err := s.Transaction(func() error {
		if err := s.Orders().Insert(order(2, "bob", "bb")); err != nil {
			return err
		}
		if err := s.History().Append(2, data.SlippageEntry{Slippage: 100}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	o, err := s.Orders().Get(2)
	require.NoError(t, err)
	assert.Nil(t, o, "rolled back insert must not survive")

	h, err := s.History().Select(2)
	require.NoError(t, err)
	assert.Empty(t, h)

	kept, err := s.Orders().Get(1)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestLastBlock(t *testing.T) {
	s := NewStorage()

	lb, err := s.LastBlock().Get()
	require.NoError(t, err)
	assert.Nil(t, lb)

	require.NoError(t, s.LastBlock().Set(42))
	lb, err = s.LastBlock().Get()
	require.NoError(t, err)
	require.NotNil(t, lb)
	assert.Equal(t, uint64(42), *lb)
}
