package api

import (
	"context"
	"strconv"
)

// ListCategories calls GET /categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory calls POST /categories.
func (c *Client) CreateCategory(ctx context.Context, params CategoryParams) (*Category, error) {
	var out Category
	if err := c.post(ctx, "/categories", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory calls PUT /categories/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id int64, params CategoryParams) (*Category, error) {
	var out Category
	if err := c.put(ctx, "/categories/"+strconv.FormatInt(id, 10), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory calls DELETE /categories/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, "/categories/"+strconv.FormatInt(id, 10))
}
