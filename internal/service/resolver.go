package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/scanpayload"
	"github.com/Eursukkul/event-registration-service/internal/ticketcode"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// fallbackScanLimit caps the expensive deep-inspection pass per collection.
// It tolerates historically inconsistent field naming without letting a bad
// scan degrade into a table walk.
const fallbackScanLimit = 200

// TicketIdentity is a resolved scan: which collection the holder lives in
// and their full record.
type TicketIdentity struct {
	EntityType string
	Identifier string
	Registrant *models.Registrant
}

type ResolverService interface {
	Resolve(ctx context.Context, payload string) (*TicketIdentity, error)
}

type resolverService struct {
	registrants repository.RegistrantRepository
	tickets     repository.TicketRepository
	log         zerolog.Logger
}

func NewResolverService(registrants repository.RegistrantRepository, tickets repository.TicketRepository, log zerolog.Logger) ResolverService {
	return &resolverService{registrants: registrants, tickets: tickets, log: log}
}

// Resolve maps a raw scan payload to a stored ticket identity. It returns
// ErrBadPayload when nothing identifier-shaped can be extracted and
// ErrTicketNotFound when the identifier matches no record; it never panics
// on hostile input.
func (s *resolverService) Resolve(ctx context.Context, payload string) (*TicketIdentity, error) {
	id, ok := scanpayload.Extract(payload)
	if !ok {
		return nil, ErrBadPayload
	}

	// Cheapest first: indexed exact match per collection.
	for _, role := range models.Roles {
		reg, err := s.registrants.FindByTicketCode(ctx, role, id)
		if err == nil {
			return identity(role, id, reg), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// All-digit identifiers also try the numeric projection, for records
	// whose code was stored as a number.
	if ticketcode.AllDigits(id) {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			for _, role := range models.Roles {
				reg, err := s.registrants.FindByTicketCodeNum(ctx, role, n)
				if err == nil {
					return identity(role, id, reg), nil
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
			}
		}
	}

	// The tickets table is authoritative after upgrades; a code there maps
	// back to its owning registrant.
	ticket, err := s.tickets.FindByCode(ctx, id)
	if err == nil {
		if role, ok := models.ParseRole(ticket.EntityType); ok {
			reg, rerr := s.registrants.FindByID(ctx, role, ticket.EntityID)
			if rerr == nil {
				return identity(role, id, reg), nil
			}
			if !errors.Is(rerr, gorm.ErrRecordNotFound) {
				return nil, rerr
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Capped fallback: deep-inspect free-form fields of a bounded slice of
	// records per collection.
	for _, role := range models.Roles {
		regs, err := s.registrants.ListWithExtra(ctx, role, fallbackScanLimit)
		if err != nil {
			return nil, err
		}
		for i := range regs {
			if scanpayload.ContainsValue(map[string]any(regs[i].Extra), id) {
				s.log.Info().
					Str("role", string(role)).
					Str("identifier", id).
					Msg("ticket resolved via fallback field scan")
				return identity(role, id, &regs[i]), nil
			}
		}
	}

	return nil, ErrTicketNotFound
}

func identity(role models.Role, id string, reg *models.Registrant) *TicketIdentity {
	return &TicketIdentity{
		EntityType: role.Collection(),
		Identifier: id,
		Registrant: reg,
	}
}
