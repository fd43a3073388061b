// Package mem implements the data contracts in memory. It backs the engine
// tests and hosts that embed the engine without a database; the production
// path is the postgres implementation.
package mem

import (
	"sort"
	"sync"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type state struct {
	orders    map[uint64]data.Order
	byHash    map[string]uint64
	byMaker   map[string][]uint64
	history   map[uint64][]data.SlippageEntry
	nextID    uint64
	lastBlock *uint64
}

func (s *state) clone() *state {
	c := &state{
		orders:  make(map[uint64]data.Order, len(s.orders)),
		byHash:  make(map[string]uint64, len(s.byHash)),
		byMaker: make(map[string][]uint64, len(s.byMaker)),
		history: make(map[uint64][]data.SlippageEntry, len(s.history)),
		nextID:  s.nextID,
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.byHash {
		c.byHash[k] = v
	}
	for k, v := range s.byMaker {
		c.byMaker[k] = append([]uint64(nil), v...)
	}
	for k, v := range s.history {
		c.history[k] = append([]data.SlippageEntry(nil), v...)
	}
	if s.lastBlock != nil {
		lb := *s.lastBlock
		c.lastBlock = &lb
	}
	return c
}

// Storage is a mutex-guarded in-memory data.Storage. Transaction restores a
// snapshot when fn fails, giving the same all-or-nothing semantics as the
// postgres implementation.
type Storage struct {
	mu sync.Mutex
	st *state
}

func NewStorage() *Storage {
	return &Storage{st: &state{
		orders:  make(map[uint64]data.Order),
		byHash:  make(map[string]uint64),
		byMaker: make(map[string][]uint64),
		history: make(map[uint64][]data.SlippageEntry),
		nextID:  1,
	}}
}

func (s *Storage) Orders() data.Orders       { return ordersQ{s} }
func (s *Storage) History() data.History     { return historyQ{s} }
func (s *Storage) LastBlock() data.LastBlock { return blockQ{s} }

func (s *Storage) Transaction(fn func() error) error {
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type ordersQ struct{ s *Storage }

func (q ordersQ) NextID() (uint64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	id := q.s.st.nextID
	q.s.st.nextID++
	return id, nil
}

func (q ordersQ) Insert(o data.Order) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.orders[o.OrderID]; ok {
		return errors.Errorf("order %d already exists", o.OrderID)
	}
	q.s.st.orders[o.OrderID] = o
	q.s.st.byHash[o.Hashlock] = o.OrderID
	q.s.st.byMaker[o.Maker] = append(q.s.st.byMaker[o.Maker], o.OrderID)
	return nil
}

func (q ordersQ) Update(o data.Order) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	stored, ok := q.s.st.orders[o.OrderID]
	if !ok {
		return errors.Errorf("order %d does not exist", o.OrderID)
	}
	stored.CurrentSlippage = o.CurrentSlippage
	stored.Status = o.Status
	stored.LastSlippageUpdate = o.LastSlippageUpdate
	stored.FillAttempts = o.FillAttempts
	q.s.st.orders[o.OrderID] = stored
	return nil
}

func (q ordersQ) Get(orderID uint64) (*data.Order, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	o, ok := q.s.st.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (q ordersQ) GetByHashlock(hashlock string) (*data.Order, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	id, ok := q.s.st.byHash[hashlock]
	if !ok {
		return nil, nil
	}
	o := q.s.st.orders[id]
	return &o, nil
}

func (q ordersQ) SelectByMaker(maker string) ([]uint64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return append([]uint64(nil), q.s.st.byMaker[maker]...), nil
}

func (q ordersQ) SelectByStatus(st data.Status) ([]data.Order, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var result []data.Order
	for _, o := range q.s.st.orders {
		if o.Status == st {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderID < result[j].OrderID })
	return result, nil
}

func (q ordersQ) Count() (uint64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return uint64(len(q.s.st.orders)), nil
}

type historyQ struct{ s *Storage }

func (q historyQ) Append(orderID uint64, e data.SlippageEntry) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	q.s.st.history[orderID] = append(q.s.st.history[orderID], e)
	return nil
}

func (q historyQ) Select(orderID uint64) ([]data.SlippageEntry, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return append([]data.SlippageEntry(nil), q.s.st.history[orderID]...), nil
}

type blockQ struct{ s *Storage }

func (q blockQ) Set(id uint64) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	q.s.st.lastBlock = &id
	return nil
}

func (q blockQ) Get() (*uint64, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if q.s.st.lastBlock == nil {
		return nil, nil
	}
	lb := *q.s.st.lastBlock
	return &lb, nil
}
