package ledger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pennywise/internal/api"
)

// Client is the slice of the API surface the store drives.
type Client interface {
	ListCategories(ctx context.Context) ([]api.Category, error)
	ListTransactions(ctx context.Context) ([]api.Transaction, error)
	Balance(ctx context.Context) (*api.Balance, error)
	CreateTransaction(ctx context.Context, tx api.NewTransaction) (*api.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, patch api.TransactionPatch) (*api.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, params api.CategoryParams) (*api.Category, error)
	UpdateCategory(ctx context.Context, id int64, params api.CategoryParams) (*api.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Snapshot is one consistent view of the remote data set.
type Snapshot struct {
	Categories   []api.Category
	Transactions []api.Transaction
	Balance      *api.Balance
}

// Store mirrors the remote ledger in memory. Mutations write through to the
// service and then refetch everything; the snapshot is only ever replaced
// wholesale, never patched, so readers cannot observe a half-applied state.
type Store struct {
	client Client
	log    zerolog.Logger

	mu     sync.RWMutex
	snap   Snapshot
	errMsg string
}

func NewStore(client Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

// Snapshot returns the current mirror. The contained slices must be treated
// as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Err returns the message from the most recent failed operation, empty when
// the last operation succeeded. It is overwritten, not accumulated.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Refresh fetches categories, transactions and balance concurrently and
// installs all three atomically. On any failure the previous snapshot stays
// visible. Concurrent refreshes are not coalesced; the last writer wins,
// and every writer holds a complete server-held state.
func (s *Store) Refresh(ctx context.Context) error {
	var (
		categories   []api.Category
		transactions []api.Transaction
		balance      *api.Balance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if categories, err = s.client.ListCategories(gctx); err != nil {
			s.fail("Failed to load categories.", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if transactions, err = s.client.ListTransactions(gctx); err != nil {
			s.fail("Failed to load transactions.", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if balance, err = s.client.Balance(gctx); err != nil {
			s.fail("Failed to load balance.", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Categories:   categories,
		Transactions: transactions,
		Balance:      balance,
	}
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// AddTransaction writes a new transaction and refetches the mirror.
func (s *Store) AddTransaction(ctx context.Context, tx api.NewTransaction) error {
	if _, err := s.client.CreateTransaction(ctx, tx); err != nil {
		s.fail("Failed to add transaction.", err)
		return err
	}
	return s.Refresh(ctx)
}

// UpdateTransaction applies a partial update and refetches the mirror.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, patch api.TransactionPatch) error {
	if _, err := s.client.UpdateTransaction(ctx, id, patch); err != nil {
		s.fail("Failed to update transaction.", err)
		return err
	}
	return s.Refresh(ctx)
}

// DeleteTransaction removes a transaction and refetches the mirror.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.client.DeleteTransaction(ctx, id); err != nil {
		s.fail("Failed to delete transaction.", err)
		return err
	}
	return s.Refresh(ctx)
}

// CreateCategory creates a category and refetches the mirror.
func (s *Store) CreateCategory(ctx context.Context, name string, typ api.CategoryType) error {
	if _, err := s.client.CreateCategory(ctx, api.CategoryParams{Name: name, Type: typ}); err != nil {
		s.fail("Failed to create category.", err)
		return err
	}
	return s.Refresh(ctx)
}

// UpdateCategory renames/retypes a category and refetches the mirror.
func (s *Store) UpdateCategory(ctx context.Context, id int64, name string, typ api.CategoryType) error {
	if _, err := s.client.UpdateCategory(ctx, id, api.CategoryParams{Name: name, Type: typ}); err != nil {
		s.fail("Failed to update category.", err)
		return err
	}
	return s.Refresh(ctx)
}

// DeleteCategory removes a category and refetches the mirror.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		s.fail("Failed to delete category.", err)
		return err
	}
	return s.Refresh(ctx)
}

func (s *Store) fail(msg string, err error) {
	s.log.Error().Err(err).Msg(msg)
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
