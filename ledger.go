package payscope

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Ledger is the authoritative in-memory balance map.
//
// Every operation runs under a single lock covering read, validation,
// mutation and the snapshot flush, so a Ledger can be shared by goroutines.
type Ledger struct {
	mu       sync.Mutex
	balances map[AccountID]Balance
	store    Store
	logger   *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used to report durability problems.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Open loads a ledger from store.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	balances, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	if balances == nil {
		balances = make(map[AccountID]Balance)
	}
	// a store is not trusted to enforce non-negativity.
	for id, b := range balances {
		if b.IsNegative() {
			l.logger.Warn("negative balance clamped to zero", zap.Stringer("account", id), zap.Stringer("balance", b))
			balances[id] = Balance{}
		}
	}
	l.balances = balances
	l.logger.Info("ledger opened", zap.Int("accounts", len(balances)))
	return l, nil
}

// Balance returns the balance of id, zero when the account is unknown.
func (l *Ledger) Balance(id AccountID) Balance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[id]
}

// Has reports whether the ledger holds an entry for id, even a zero one.
func (l *Ledger) Has(id AccountID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.balances[id]
	return ok
}

// Len returns the number of accounts in the ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.balances)
}

// Transfer moves amount from one account to another.
//
// Preconditions are checked in order and the first failure is returned:
// ErrInvalidTarget when from and to are the same account, ErrInvalidAmount
// when amount is not positive, ErrInsufficientFunds when from holds less than
// amount. A rejected transfer changes nothing.
//
// On success the snapshot is flushed before returning. If the flush fails the
// transfer still stands in memory and the returned error wraps ErrNotPersisted.
func (l *Ledger) Transfer(from, to AccountID, amount Balance) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from == to {
		return fmt.Errorf("%w: cannot transfer from %v to itself", ErrInvalidTarget, from)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive, got %v", ErrInvalidAmount, amount)
	}
	available := l.balances[from]
	if available.LessThan(amount) {
		return fmt.Errorf("%w: %v holds %v, cannot transfer %v", ErrInsufficientFunds, from, available, amount)
	}

	l.balances[from] = available.Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	l.logger.Debug("transfer",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("amount", amount))

	return l.flush()
}

// SetBalance overwrites the balance of id with amount.
//
// It returns ErrInvalidAmount for a negative amount. It performs no
// authorization check, callers must do it. Durability is handled like Transfer.
func (l *Ledger) SetBalance(id AccountID, amount Balance) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative, got %v", ErrInvalidAmount, amount)
	}

	l.balances[id] = amount
	l.logger.Debug("set balance", zap.Stringer("account", id), zap.Stringer("balance", amount))

	return l.flush()
}

// Accounts returns an iterator over a snapshot of all accounts, sorted by identifier.
func (l *Ledger) Accounts() iter.Seq2[AccountID, Balance] {
	l.mu.Lock()
	snapshot := maps.Clone(l.balances)
	l.mu.Unlock()

	return func(yield func(AccountID, Balance) bool) {
		for _, id := range slices.SortedFunc(maps.Keys(snapshot), AccountID.Compare) {
			if !yield(id, snapshot[id]) {
				return
			}
		}
	}
}

// Total returns the sum of all balances.
func (l *Ledger) Total() Balance {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total Balance
	for _, b := range l.balances {
		total = total.Add(b)
	}
	return total
}

// Flush writes the current snapshot to the store.
func (l *Ledger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flush()
}

// Close flushes the ledger a last time. The ledger remains usable.
func (l *Ledger) Close() error {
	if err := l.Flush(); err != nil {
		return err
	}
	l.logger.Info("ledger closed")
	return nil
}

// flush must be called with l.mu held.
func (l *Ledger) flush() error {
	// the store receives a copy, it must not alias the live map.
	if err := l.store.Save(maps.Clone(l.balances)); err != nil {
		l.logger.Error("could not persist ledger, in-memory balances remain authoritative", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}
