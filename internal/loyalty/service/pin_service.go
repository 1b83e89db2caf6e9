package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	autherror "github.com/Ryanbarcelos/fidelize-sub001/internal/errors"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/domain"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/Ryanbarcelos/fidelize-sub001/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// IsValidFormat reports whether pin is exactly four ASCII digits.
func IsValidFormat(pin string) bool {
	return pinPattern.MatchString(pin)
}

func matchPin(pinHash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) == nil
}

type PinService struct {
	repo  domain.Repository
	audit auditRecorder
	log   *slog.Logger
	now   func() time.Time
}

func NewPinService(repo domain.Repository, logger *slog.Logger) *PinService {
	return &PinService{
		repo:  repo,
		audit: auditRecorder{repo: repo, logger: logger},
		log:   logger,
		now:   time.Now,
	}
}

func (s *PinService) SetClock(now func() time.Time) {
	s.now = now
}

// ValidatePin checks a store PIN. Malformed input is rejected before any
// storage access; every checked attempt is audited.
func (s *PinService) ValidatePin(ctx context.Context, input dto.PinValidationInput) (*dto.PinValidationOutput, error) {
	companyID := strings.TrimSpace(input.CompanyID)
	pin := input.Pin

	if companyID == "" || pin == "" {
		metrics.PinValidations.WithLabelValues(autherror.KindValidation.String()).Inc()
		return nil, autherror.ErrMissingFields
	}
	if !IsValidFormat(pin) {
		metrics.PinValidations.WithLabelValues(autherror.KindValidation.String()).Inc()
		return nil, autherror.ErrInvalidPinFormat
	}

	entry := domain.AuditLog{
		Action:    domain.AuditActionPinValidate,
		CompanyID: companyID,
		CardID:    strings.TrimSpace(input.CardID),
		IPAddress: input.IPAddress,
	}
	if action := strings.TrimSpace(input.Action); action != "" {
		entry.Reason = "action=" + action
	}

	if err := s.checkPin(ctx, companyID, pin); err != nil {
		metrics.PinValidations.WithLabelValues(autherror.KindOf(err).String()).Inc()
		if autherror.KindOf(err) != autherror.KindInternal {
			s.audit.failed(ctx, entry, err, s.now())
		}
		return nil, err
	}

	metrics.PinValidations.WithLabelValues(metrics.ResultSuccess).Inc()
	s.audit.succeeded(ctx, entry, s.now())

	return &dto.PinValidationOutput{Valid: true, Message: autherror.MsgPinValid}, nil
}

// ValidateForAddPoints is the check behind direct store PIN entry. Each
// failure class carries its own message.
func (s *PinService) ValidateForAddPoints(ctx context.Context, companyID, pin string) (dto.PinCheck, error) {
	var err error
	switch {
	case pin == "":
		err = autherror.ErrPinRequired
	case !IsValidFormat(pin):
		err = autherror.ErrInvalidPinFormat
	default:
		err = s.checkPin(ctx, companyID, pin)
	}

	if err != nil {
		return dto.PinCheck{Valid: false, Message: autherror.Message(err)}, err
	}
	return dto.PinCheck{Valid: true, Message: autherror.MsgPinValid}, nil
}

func (s *PinService) checkPin(ctx context.Context, companyID, pin string) error {
	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		s.log.Error("company lookup failed", "company_id", companyID, "err", err)
		return fmt.Errorf("get company %s: %w", companyID, err)
	}
	if company == nil {
		return autherror.ErrCompanyNotFound
	}
	if !matchPin(company.PinHash, pin) {
		return autherror.ErrPinMismatch
	}
	return nil
}
