package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Keoroanthony/go-food-ordering/internal/backend"
)

// Client implements backend.Records on top of gorm.
// Every call runs under the configured timeout so a stalled database cannot hang a request.
type Client struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewClient(gdb *gorm.DB, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{db: gdb, timeout: timeout}
}

var _ backend.Records = (*Client)(nil)

func (c *Client) CreateRecord(ctx context.Context, table string, record any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

func (c *Client) QueryRecords(ctx context.Context, table string, q backend.Query, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx := c.db.WithContext(ctx).Table(table)
	if len(q.Filter) > 0 {
		tx = tx.Where(map[string]any(q.Filter))
	}
	for _, assoc := range q.Include {
		tx = tx.Preload(assoc)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	return nil
}

func (c *Client) UpdateRecords(ctx context.Context, table string, filter backend.Filter, fields map[string]any) (int64, error) {
	if len(filter) == 0 {
		return 0, errors.New("update without filter")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res := c.db.WithContext(ctx).Table(table).Where(map[string]any(filter)).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}
