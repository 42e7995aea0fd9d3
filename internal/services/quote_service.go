package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/JAMA60091234/runmaster-backend/internal/models"
)

var motivationalQuotes = []string{
	"Every step forward is a step toward your goal.",
	"The only run you'll regret is the one you didn't take.",
	"Your body can stand almost anything. It's your mind you have to convince.",
	"Running is the greatest metaphor for life, because you get out of it what you put into it.",
	"The difference between ordinary and extraordinary is that little extra.",
	"You don't have to be fast, but you'd better be fearless.",
	"The pain you feel today will be the strength you feel tomorrow.",
	"Running is not about being better than someone else. It's about being better than you used to be.",
	"The only way to define your limits is by going beyond them.",
	"Your legs are not giving out. Your head is giving out. Keep going.",
	"The hardest step is the first one out the door.",
	"Running is the key to unlocking your potential.",
	"Every mile is a victory.",
	"Your pace, your race.",
	"The road to success is always under construction.",
	"Running is a conversation with your body. Listen to it.",
	"The only bad run is the one that didn't happen.",
	"Your speed doesn't matter. Forward is forward.",
	"Running is a celebration of what your body can do.",
	"The best time to start was yesterday. The next best time is now.",
}

type quoteStore interface {
	GetOrCreateForDate(ctx context.Context, date time.Time, text string) (*models.Quote, error)
}

type QuoteService struct {
	quoteRepo quoteStore
}

func NewQuoteService(quoteRepo quoteStore) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo}
}

// QuoteOfTheDay returns the persisted quote for today, picking a random one
// on the first request of the day. The unique index on quote_date keeps
// concurrent first requests from storing two quotes.
func (s *QuoteService) QuoteOfTheDay(ctx context.Context, now time.Time) (*models.Quote, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	candidate := motivationalQuotes[rand.Intn(len(motivationalQuotes))]
	return s.quoteRepo.GetOrCreateForDate(ctx, today, candidate)
}
