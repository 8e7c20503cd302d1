package api

import (
	"context"
	"net/url"
	"strconv"
)

// Balance calls GET /balance.
func (c *Client) Balance(ctx context.Context) (*Balance, error) {
	var out Balance
	if err := c.get(ctx, "/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthReport calls GET /report/month. An empty typ fetches both types.
func (c *Client) MonthReport(ctx context.Context, year, month int, typ CategoryType, timezone string) ([]ReportItem, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))
	applyReportFilters(query, typ, timezone)

	var out []ReportItem
	if err := c.get(ctx, "/report/month", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DayReport calls GET /report/day. An empty typ fetches both types.
func (c *Client) DayReport(ctx context.Context, year, month, day int, typ CategoryType, timezone string) ([]ReportItem, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))
	query.Set("day", strconv.Itoa(day))
	applyReportFilters(query, typ, timezone)

	var out []ReportItem
	if err := c.get(ctx, "/report/day", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportCSV calls GET /export/csv and returns the raw payload.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/export/csv")
}

func applyReportFilters(query url.Values, typ CategoryType, timezone string) {
	if typ != "" {
		query.Set("type", string(typ))
	}
	if timezone != "" {
		query.Set("timezone", timezone)
	}
}
