package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
	"github.com/jackc/pgx/v5"
)

type QuoteRepository struct {
	db DBTX
}

func NewQuoteRepository(db DBTX) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// GetOrCreateForDate returns the quote stored for the given date, inserting
// the candidate text when none exists yet. Two concurrent first requests race
// on the unique quote_date index; the loser re-reads the winner's row.
func (r *QuoteRepository) GetOrCreateForDate(ctx context.Context, date time.Time, text string) (*models.Quote, error) {
	insert := `
		INSERT INTO daily_quotes (quote_date, text)
		VALUES ($1, $2)
		ON CONFLICT (quote_date) DO NOTHING
		RETURNING id, quote_date, text, created_at
	`
	var quote models.Quote
	err := r.db.QueryRow(ctx, insert, date, text).
		Scan(&quote.ID, &quote.QuoteDate, &quote.Text, &quote.CreatedAt)
	if err == nil {
		return &quote, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	query := `SELECT id, quote_date, text, created_at FROM daily_quotes WHERE quote_date = $1`
	err = r.db.QueryRow(ctx, query, date).
		Scan(&quote.ID, &quote.QuoteDate, &quote.Text, &quote.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
