package contact

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/derob357/sisters-promise/internal/pkg/logger"
	"github.com/derob357/sisters-promise/internal/recaptcha"
	"github.com/derob357/sisters-promise/internal/sanitize"
)

// Field length bounds, in characters.
const (
	minNameLength    = 2
	maxNameLength    = 100
	maxEmailLength   = 100
	minMessageLength = 10
	maxMessageLength = 1000
)

// emailRegex is the usual pragmatic RFC 5322 approximation: one @, no
// whitespace, dotted domain.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is a raw contact-form payload plus the bot-verification token.
type Submission struct {
	Name    string
	Email   string
	Message string
	Token   string
}

// Receipt acknowledges a verified submission. Reference is freshly
// generated per acknowledgment and never repeats.
type Receipt struct {
	Reference  string
	ReceivedAt time.Time
}

// Verifier is the bot-verification dependency.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*recaptcha.Result, error)
}

// Service implements contact-form intake.
type Service struct {
	verifier Verifier
	minScore float64
}

// NewService creates a contact service rejecting verifications scored at
// or below minScore.
func NewService(verifier Verifier, minScore float64) *Service {
	return &Service{verifier: verifier, minScore: minScore}
}

// Process validates the submission, verifies the token, logs the record
// and returns a receipt. Validation rules run in a fixed order and the
// first failure short-circuits: token presence, name, email, message.
func (s *Service) Process(ctx context.Context, sub Submission, remoteIP string) (*Receipt, error) {
	if err := validate(sub); err != nil {
		return nil, err
	}

	result, err := s.verifier.Verify(ctx, sub.Token, remoteIP)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationUnavailable, err)
	}
	if !result.Success || result.Score <= s.minScore {
		logger.Warn("contact submission rejected by verification",
			"score", fmt.Sprintf("%.2f", result.Score),
			"success", fmt.Sprintf("%t", result.Success),
			"ip", remoteIP,
		)
		return nil, ErrVerificationFailed
	}

	receipt := &Receipt{
		Reference:  uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
	}

	// This log record is the entire persistence of a submission.
	logger.Info("contact submission received",
		"reference", receipt.Reference,
		"name", sanitize.CleanMax(sub.Name, sanitize.MaxName),
		"email", sanitize.CleanMax(sub.Email, sanitize.MaxEmail),
		"message", sanitize.CleanMax(sub.Message, sanitize.MaxMessage),
		"ip", remoteIP,
		"received_at", receipt.ReceivedAt.Format(time.RFC3339),
	)

	return receipt, nil
}

func validate(sub Submission) error {
	if strings.TrimSpace(sub.Token) == "" {
		return ErrMissingToken
	}

	// Bounds count characters, not bytes; accented names and messages
	// must not be mis-measured.
	name := utf8.RuneCountInString(strings.TrimSpace(sub.Name))
	if name < minNameLength || name > maxNameLength {
		return ErrInvalidName
	}

	email := strings.TrimSpace(sub.Email)
	if utf8.RuneCountInString(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	msg := utf8.RuneCountInString(strings.TrimSpace(sub.Message))
	if msg < minMessageLength || msg > maxMessageLength {
		return ErrInvalidMessage
	}

	return nil
}
