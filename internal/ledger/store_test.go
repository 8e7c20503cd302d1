package ledger

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

// fakeClient is an in-memory stand-in for the remote service.
type fakeClient struct {
	categories   []api.Category
	transactions []api.Transaction
	balance      api.Balance

	nextID int64

	failList   error
	failCreate error
	failUpdate error
	failDelete error

	refreshCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{nextID: 100}
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]api.Category, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	f.refreshCalls++
	return append([]api.Category{}, f.categories...), nil
}

func (f *fakeClient) ListTransactions(ctx context.Context) ([]api.Transaction, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]api.Transaction{}, f.transactions...), nil
}

func (f *fakeClient) Balance(ctx context.Context) (*api.Balance, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	bal := f.balance
	return &bal, nil
}

func (f *fakeClient) CreateTransaction(ctx context.Context, tx api.NewTransaction) (*api.Transaction, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	created := api.Transaction{
		ID:         f.nextID,
		Amount:     tx.Amount,
		Note:       tx.Note,
		CategoryID: tx.CategoryID,
	}
	if tx.CreatedAt != nil {
		created.CreatedAt = *tx.CreatedAt
	} else {
		created.CreatedAt = time.Now()
	}
	f.transactions = append(f.transactions, created)
	return &created, nil
}

func (f *fakeClient) UpdateTransaction(ctx context.Context, id int64, patch api.TransactionPatch) (*api.Transaction, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.transactions {
		if f.transactions[i].ID != id {
			continue
		}
		if patch.Amount != nil {
			f.transactions[i].Amount = *patch.Amount
		}
		if patch.CategoryID != nil {
			f.transactions[i].CategoryID = *patch.CategoryID
		}
		if patch.Note != nil {
			f.transactions[i].Note = *patch.Note
		}
		if patch.CreatedAt != nil {
			f.transactions[i].CreatedAt = *patch.CreatedAt
		}
		tx := f.transactions[i]
		return &tx, nil
	}
	return nil, errors.New("no such transaction")
}

func (f *fakeClient) DeleteTransaction(ctx context.Context, id int64) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return errors.New("no such transaction")
}

func (f *fakeClient) CreateCategory(ctx context.Context, params api.CategoryParams) (*api.Category, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	created := api.Category{ID: f.nextID, Name: params.Name, Type: params.Type}
	f.categories = append(f.categories, created)
	return &created, nil
}

func (f *fakeClient) UpdateCategory(ctx context.Context, id int64, params api.CategoryParams) (*api.Category, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = params.Name
			f.categories[i].Type = params.Type
			cat := f.categories[i]
			return &cat, nil
		}
	}
	return nil, errors.New("no such category")
}

func (f *fakeClient) DeleteCategory(ctx context.Context, id int64) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return errors.New("no such category")
}

func newTestStore(client *fakeClient) *Store {
	return NewStore(client, zerolog.New(io.Discard))
}

func TestRefreshInstallsAllThree(t *testing.T) {
	client := newFakeClient()
	client.categories = []api.Category{{ID: 1, Name: "Food", Type: api.Expense}}
	client.transactions = []api.Transaction{{ID: 10, CategoryID: 1, Amount: decimal.NewFromInt(5)}}
	client.balance = api.Balance{
		Income:  decimal.NewFromInt(100),
		Expense: decimal.NewFromInt(40),
		Net:     decimal.NewFromInt(60),
	}
	store := newTestStore(client)

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Categories) != 1 || len(snap.Transactions) != 1 {
		t.Fatalf("snapshot = %d categories, %d transactions, want 1/1",
			len(snap.Categories), len(snap.Transactions))
	}
	if snap.Balance == nil || !snap.Balance.Net.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("balance = %+v, want net 60", snap.Balance)
	}
	if store.Err() != "" {
		t.Fatalf("Err() = %q, want empty", store.Err())
	}
}

func TestRefreshFailureKeepsPriorSnapshot(t *testing.T) {
	client := newFakeClient()
	client.categories = []api.Category{{ID: 1, Name: "Food", Type: api.Expense}}
	store := newTestStore(client)

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("seed Refresh() unexpected error: %v", err)
	}

	client.failList = errors.New("boom")
	if err := store.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() error = nil, want non-nil")
	}

	snap := store.Snapshot()
	if len(snap.Categories) != 1 {
		t.Fatalf("prior snapshot lost: %d categories, want 1", len(snap.Categories))
	}
	if store.Err() == "" {
		t.Fatal("Err() empty, want a message")
	}
}

func TestAddTransactionWritesThroughAndRefreshes(t *testing.T) {
	client := newFakeClient()
	client.categories = []api.Category{{ID: 3, Name: "Food", Type: api.Expense}}
	store := newTestStore(client)

	err := store.AddTransaction(context.Background(), api.NewTransaction{
		Amount:     decimal.RequireFromString("12.5"),
		CategoryID: 3,
	})
	if err != nil {
		t.Fatalf("AddTransaction() unexpected error: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Transactions) != 1 {
		t.Fatalf("snapshot transactions = %d, want 1 (mirror not refreshed)", len(snap.Transactions))
	}
	if !snap.Transactions[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("amount = %s, want 12.5", snap.Transactions[0].Amount)
	}
}

func TestMutationFailureSetsErrAndPreservesState(t *testing.T) {
	client := newFakeClient()
	client.categories = []api.Category{{ID: 3, Name: "Food", Type: api.Expense}}
	store := newTestStore(client)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("seed Refresh() unexpected error: %v", err)
	}

	client.failCreate = errors.New("boom")
	err := store.AddTransaction(context.Background(), api.NewTransaction{
		Amount:     decimal.NewFromInt(1),
		CategoryID: 3,
	})
	if err == nil {
		t.Fatal("AddTransaction() error = nil, want non-nil")
	}
	if store.Err() != "Failed to add transaction." {
		t.Fatalf("Err() = %q, want %q", store.Err(), "Failed to add transaction.")
	}
	if len(store.Snapshot().Transactions) != 0 {
		t.Fatal("snapshot changed on failed mutation")
	}
}

func TestErrIsOverwrittenNotAccumulated(t *testing.T) {
	client := newFakeClient()
	store := newTestStore(client)

	client.failCreate = errors.New("boom")
	_ = store.CreateCategory(context.Background(), "Food", api.Expense)
	if store.Err() != "Failed to create category." {
		t.Fatalf("Err() = %q, want create message", store.Err())
	}

	client.failCreate = nil
	client.failDelete = errors.New("boom")
	_ = store.DeleteCategory(context.Background(), 999)
	if store.Err() != "Failed to delete category." {
		t.Fatalf("Err() = %q, want delete message", store.Err())
	}

	client.failDelete = nil
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if store.Err() != "" {
		t.Fatalf("Err() = %q, want cleared after success", store.Err())
	}
}

func TestUpdateCategoryRoundTrip(t *testing.T) {
	client := newFakeClient()
	client.categories = []api.Category{
		{ID: 1, Name: "Food", Type: api.Expense},
		{ID: 2, Name: "Salary", Type: api.Income},
	}
	store := newTestStore(client)

	if err := store.UpdateCategory(context.Background(), 1, "Groceries", api.Expense); err != nil {
		t.Fatalf("UpdateCategory() unexpected error: %v", err)
	}

	snap := store.Snapshot()
	seen := 0
	for _, c := range snap.Categories {
		if c.ID == 1 {
			seen++
			if c.Name != "Groceries" || c.Type != api.Expense {
				t.Fatalf("category 1 = %+v, want Groceries/expense", c)
			}
		}
	}
	if seen != 1 {
		t.Fatalf("category 1 appears %d times, want exactly 1", seen)
	}
}

func TestDeleteTransactionRefreshesMirror(t *testing.T) {
	client := newFakeClient()
	client.transactions = []api.Transaction{{ID: 10, CategoryID: 1, Amount: decimal.NewFromInt(5)}}
	store := newTestStore(client)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("seed Refresh() unexpected error: %v", err)
	}

	if err := store.DeleteTransaction(context.Background(), 10); err != nil {
		t.Fatalf("DeleteTransaction() unexpected error: %v", err)
	}
	if len(store.Snapshot().Transactions) != 0 {
		t.Fatal("deleted transaction still present in snapshot")
	}
}
