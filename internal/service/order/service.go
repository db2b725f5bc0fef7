package order

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"paintland/internal/domain"
)

// Service turns cart contents into the WhatsApp order handoff.
type Service struct {
	phone    string
	template string
	location *time.Location
	now      func() time.Time
	logger   *log.Logger
}

type Option func(*Service)

// WithTemplate replaces DefaultTemplate.
func WithTemplate(template string) Option {
	return func(s *Service) {
		if strings.TrimSpace(template) != "" {
			s.template = template
		}
	}
}

// WithLocation sets the zone order dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(phone string, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{
		phone:    phone,
		template: DefaultTemplate,
		location: time.UTC,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadTemplate reads a message template file.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read order template: %w", err)
	}
	return string(b), nil
}

// Checkout is everything the storefront needs to hand the order off.
type Checkout struct {
	Summary     Summary `json:"summary"`
	DisplayText string  `json:"displayText"`
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsappUrl"`
}

// Summarize projects items at the current time.
func (s *Service) Summarize(items []domain.LineItem) Summary {
	return Summarize(items, s.now().In(s.location))
}

// Checkout builds the order message and link. An empty cart is refused
// with domain.ErrEmptyCart so the caller can warn instead of opening an
// empty draft.
func (s *Service) Checkout(items []domain.LineItem, customer *CustomerInfo) (*Checkout, error) {
	summary := s.Summarize(items)
	if len(summary.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	message := OrderMessage(summary, customer, s.template)
	s.logger.Printf("order service: checkout lines=%d total_quantity=%d", len(summary.Lines), summary.TotalQuantity)
	return &Checkout{
		Summary:     summary,
		DisplayText: summary.DisplayText(),
		Message:     message,
		WhatsAppURL: WhatsAppLink(message, s.phone),
	}, nil
}
