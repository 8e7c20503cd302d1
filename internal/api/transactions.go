package api

import (
	"context"
	"strconv"
)

// ListTransactions calls GET /transactions.
// The service returns the full set; there is no pagination.
func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if err := c.get(ctx, "/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction calls POST /transactions.
func (c *Client) CreateTransaction(ctx context.Context, tx NewTransaction) (*Transaction, error) {
	var out Transaction
	if err := c.post(ctx, "/transactions", tx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTransaction calls PUT /transactions/{id} with a partial payload.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) (*Transaction, error) {
	var out Transaction
	if err := c.put(ctx, "/transactions/"+strconv.FormatInt(id, 10), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTransaction calls DELETE /transactions/{id}.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.delete(ctx, "/transactions/"+strconv.FormatInt(id, 10))
}
