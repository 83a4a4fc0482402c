package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Eursukkul/event-registration-service/internal/fieldmap"
	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/ticketcode"
	"github.com/Eursukkul/event-registration-service/pkg/rabbitmq"
	"github.com/Eursukkul/event-registration-service/pkg/retry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// codeAttempts bounds the collision-retry loop. The code space is large
// relative to expected concurrency, so exhausting this is a fault, not a
// capacity condition.
const codeAttempts = 6

type AllocationResult struct {
	ID         string
	TicketCode string
	Existed    bool
}

type AllocatorService interface {
	Allocate(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*AllocationResult, error)
}

type allocatorService struct {
	registrants repository.RegistrantRepository
	publisher   *rabbitmq.Publisher
	whitelist   []string
	log         zerolog.Logger
}

// NewAllocatorService builds the identity allocator. A nil publisher skips
// notification dispatch; an empty whitelist persists all normalized fields.
func NewAllocatorService(registrants repository.RegistrantRepository, publisher *rabbitmq.Publisher, whitelist []string, log zerolog.Logger) AllocatorService {
	return &allocatorService{
		registrants: registrants,
		publisher:   publisher,
		whitelist:   whitelist,
		log:         log,
	}
}

func (s *allocatorService) Allocate(ctx context.Context, roleName string, form map[string]any, addedByAdmin bool) (*AllocationResult, error) {
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, ErrUnknownRole
	}

	fields := fieldmap.NormalizeAndFilter(form, s.whitelist)
	email := normalizeEmail(fields["email"])
	if email != "" {
		fields["email"] = email
	}

	// Idempotent path: a known email returns its existing ticket untouched.
	if email != "" {
		existing, err := s.registrants.FindByEmail(ctx, role, email)
		if err == nil {
			return existingResult(existing), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var created *models.Registrant
	var existed *models.Registrant

	err := retry.Do(codeAttempts, func() error {
		code := codeForRole(role)
		reg := &models.Registrant{
			ID:             uuid.NewString(),
			Role:           role,
			TicketCode:     &code,
			TicketCodeNum:  numericProjection(code),
			TicketCategory: string(role),
			AddedByAdmin:   addedByAdmin,
			Extra:          fields,
		}
		if email != "" {
			reg.Email = &email
		}

		if err := s.registrants.Create(ctx, reg); err != nil {
			// A duplicate can mean either a code collision (regenerate and
			// retry) or an email race we lost (the winner's record is the
			// answer).
			if email != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
				if winner, ferr := s.registrants.FindByEmail(ctx, role, email); ferr == nil {
					existed = winner
					return nil
				}
			}
			return err
		}
		created = reg
		return nil
	}, func(err error) bool {
		return errors.Is(err, gorm.ErrDuplicatedKey)
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			s.log.Error().Str("role", string(role)).Msg("ticket code space exhausted retries")
			return nil, ErrAllocationExhausted
		}
		return nil, err
	}

	if existed != nil {
		return existingResult(existed), nil
	}

	s.notifyIssued(created, email)

	return &AllocationResult{ID: created.ID, TicketCode: *created.TicketCode}, nil
}

// notifyIssued queues the ticket email for freshly created registrants.
// Dispatch is fire-and-forget; the consumer records the delivery outcome.
func (s *allocatorService) notifyIssued(reg *models.Registrant, email string) {
	if s.publisher == nil || email == "" {
		return
	}
	msg := models.TicketNotification{
		EntityType: reg.Role.Collection(),
		EntityID:   reg.ID,
		Email:      email,
		TicketCode: *reg.TicketCode,
		Category:   reg.TicketCategory,
	}
	if err := s.publisher.Publish(rabbitmq.KeyTicketIssued, msg); err != nil {
		s.log.Warn().Err(err).Str("registrant", reg.ID).Msg("failed to queue ticket notification")
	}
}

func existingResult(reg *models.Registrant) *AllocationResult {
	res := &AllocationResult{ID: reg.ID, Existed: true}
	if reg.TicketCode != nil {
		res.TicketCode = *reg.TicketCode
	}
	return res
}

// codeForRole picks the code style: human-readable digits for visitors,
// prefixed tokens for everyone else.
func codeForRole(role models.Role) string {
	if role == models.RoleVisitor {
		return ticketcode.Numeric(6)
	}
	return ticketcode.Token()
}

func numericProjection(code string) *int64 {
	if !ticketcode.AllDigits(code) {
		return nil
	}
	n, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func normalizeEmail(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}
