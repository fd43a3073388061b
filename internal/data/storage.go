package data

// Storage bundles the keyspaces behind a single transactional boundary.
// Transaction runs fn with all-or-nothing semantics: if fn returns an error,
// none of its writes survive. The engine wraps every state-changing operation
// in exactly one Transaction.
type Storage interface {
	Orders() Orders
	History() History
	LastBlock() LastBlock
	Transaction(fn func() error) error
}
