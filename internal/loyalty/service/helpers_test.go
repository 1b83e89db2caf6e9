package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/events"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/repository/memory"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUserID    = "user-1"
	testCompanyID = "padaria-central"
	testStorePin  = "1234"
	testHMACKey   = "test-hmac-key"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hashPin(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	repo       *memory.Repository
	clock      *testClock
	pins       *service.PinService
	tokens     *service.TokenService
	redemption *service.RedemptionService
	cards      *service.CardService
}

func newFixture(t *testing.T, publisher events.Publisher) *fixture {
	t.Helper()
	log := discardLogger()
	if publisher == nil {
		publisher = events.NewNoopPublisher(log)
	}

	f := &fixture{repo: memory.NewRepository(), clock: &testClock{now: baseTime}}
	f.pins = service.NewPinService(f.repo, log)
	f.tokens = service.NewTokenService(f.repo, testHMACKey, log)
	f.redemption = service.NewRedemptionService(f.repo, f.tokens, publisher, log)
	f.cards = service.NewCardService(f.repo, f.pins, publisher, log)

	f.pins.SetClock(f.clock.Now)
	f.tokens.SetClock(f.clock.Now)
	f.redemption.SetClock(f.clock.Now)
	f.cards.SetClock(f.clock.Now)

	require.NoError(t, f.repo.CreateCompany(context.Background(), &domain.Company{
		ID:        testCompanyID,
		Name:      "Padaria Central",
		PinHash:   hashPin(t, testStorePin),
		CreatedAt: baseTime,
	}))
	return f
}

func (f *fixture) seedCard(t *testing.T, id string, points int) *domain.LoyaltyCard {
	t.Helper()
	card := &domain.LoyaltyCard{
		ID:        id,
		UserID:    testUserID,
		CompanyID: testCompanyID,
		StoreName: "Padaria Central",
		Points:    points,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	require.NoError(t, f.repo.CreateCard(context.Background(), card))
	return card
}
