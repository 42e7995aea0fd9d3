package models

import "time"

// Quote is the motivational quote of the day. One row per calendar date; the
// first request of the day creates it and later requests reuse it.
type Quote struct {
	ID        int64     `json:"id"`
	QuoteDate time.Time `json:"quote_date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
