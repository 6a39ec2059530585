package payscope

import "errors"

// Validation failures. They are reported to the caller and never mutate the ledger.
var (
	ErrInvalidTarget     = errors.New("invalid target")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ErrNotPersisted is returned by mutations that were applied in memory but
// whose snapshot flush failed. The in-memory ledger stays authoritative.
var ErrNotPersisted = errors.New("balance change not persisted")

// ErrIO wraps every read or write failure of a store.
var ErrIO = errors.New("ledger store i/o error")

// ErrResourceMissing signals that the persisted ledger does not exist yet.
// FileStore recovers from it into an empty ledger.
var ErrResourceMissing = errors.New("ledger resource missing")
