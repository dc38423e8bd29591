package patient

import (
	"context"
	"errors"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/token"
)

var (
	ErrPhoneRequired    = errors.New("phone is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidAge       = errors.New("age must be between 1 and 120")
)

type Service struct {
	repo   Repository
	tokens *token.Issuer
}

func NewService(repo Repository, tokens *token.Issuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a patient together with its empty health-info row.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.Username == "" {
		return ErrUsernameRequired
	}
	if p.Phone == "" {
		return ErrPhoneRequired
	}
	if p.Age <= 0 || p.Age > 120 {
		return ErrInvalidAge
	}
	return s.repo.Create(ctx, p)
}

// Search returns the patients registered under a phone number, with
// health info nested. Reads have no side effects.
func (s *Service) Search(ctx context.Context, phone string) ([]*PatientWithHealth, error) {
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	return s.repo.FindByPhone(ctx, phone)
}

// Login looks a patient up by phone.
func (s *Service) Login(ctx context.Context, phone string) (*LoginResponse, error) {
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	p, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	signed, err := s.tokens.Issue(p.ID.String(), token.KindPatient, p.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Patient: p, Token: signed}, nil
}
