package service

import (
	"context"
	"strings"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CompanyService struct {
	repo       domain.Repository
	bcryptCost int
}

func NewCompanyService(repo domain.Repository, bcryptCost int) *CompanyService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CompanyService{repo: repo, bcryptCost: bcryptCost}
}

// CreateCompany registers a store and stores only the bcrypt hash of its PIN.
func (s *CompanyService) CreateCompany(ctx context.Context, input dto.CreateCompanyInput) (*dto.CompanyOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Pin == "" {
		return nil, autherror.ErrMissingFields
	}
	if !IsValidFormat(input.Pin) {
		return nil, autherror.ErrInvalidPinFormat
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Pin), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	company := &domain.Company{
		ID:        id,
		Name:      name,
		PinHash:   string(hash),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}

	return &dto.CompanyOutput{ID: company.ID, Name: company.Name, CreatedAt: company.CreatedAt}, nil
}
