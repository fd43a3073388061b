package data

// LastBlock persists the last foreign-chain block the lock watcher processed.
type LastBlock interface {
	Set(uint64) error
	Get() (*uint64, error)
}
