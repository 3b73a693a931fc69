package checkout

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/derob357/sisters-promise/internal/pkg/logger"
	"github.com/derob357/sisters-promise/internal/sanitize"
	"github.com/derob357/sisters-promise/internal/square"
)

// Amount bounds in minor currency units.
const (
	minAmount = 1
	maxAmount = 999999
)

const minSourceIDLength = 5

// Request is a validated-on-entry checkout submission.
type Request struct {
	SourceID string
	Amount   int64
	Currency string
	Note     string
}

// Payment is the trimmed confirmation returned to the client.
type Payment struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Timestamp string `json:"timestamp"`
}

// PaymentsProvider is the upstream payment dependency.
type PaymentsProvider interface {
	CreatePayment(ctx context.Context, req square.CreatePaymentRequest) (*square.Payment, error)
}

// Service implements payment submission.
type Service struct {
	provider   PaymentsProvider
	locationID string
}

// NewService creates a checkout service charging against the given
// merchant location.
func NewService(provider PaymentsProvider, locationID string) *Service {
	return &Service{provider: provider, locationID: locationID}
}

// Process validates the request and submits the payment upstream.
func (s *Service) Process(ctx context.Context, req Request) (*Payment, error) {
	sourceID := sanitize.Clean(req.SourceID)
	if utf8.RuneCountInString(sourceID) < minSourceIDLength {
		return nil, ErrInvalidSource
	}
	if req.Amount < minAmount || req.Amount > maxAmount {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	idempotencyKey := uuid.NewString()
	upstream, err := s.provider.CreatePayment(ctx, square.CreatePaymentRequest{
		SourceID:       sourceID,
		IdempotencyKey: idempotencyKey,
		AmountMoney:    square.Money{Amount: req.Amount, Currency: currency},
		LocationID:     s.locationID,
		Note:           sanitize.CleanMax(req.Note, sanitize.MaxNote),
	})
	if err != nil {
		logger.Error("payment creation failed",
			"source_id", sourceID,
			"amount", fmt.Sprintf("%d", req.Amount),
			"err", err.Error(),
		)
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	timestamp := upstream.CreatedAt
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	logger.Info("payment created",
		"payment_id", upstream.ID,
		"status", upstream.Status,
		"amount", fmt.Sprintf("%d", upstream.AmountMoney.Amount),
		"currency", upstream.AmountMoney.Currency,
	)

	return &Payment{
		ID:        upstream.ID,
		Status:    upstream.Status,
		Amount:    upstream.AmountMoney.Amount,
		Currency:  upstream.AmountMoney.Currency,
		Timestamp: timestamp,
	}, nil
}
