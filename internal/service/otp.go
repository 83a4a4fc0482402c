package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/event-registration-service/internal/models"
	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/ticketcode"
	"github.com/Eursukkul/event-registration-service/pkg/mailer"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OTPTTL is how long a verification code stays redeemable. Expiry is
// enforced by Redis, not by an in-process sweep.
const OTPTTL = 10 * time.Minute

type OTPService interface {
	// Request issues a fresh code for the email and sends it; a repeat
	// request overwrites the previous code.
	Request(ctx context.Context, role, email string) error
	// Verify redeems a code at most once (GETDEL) and marks the
	// registrant's email verified on success.
	Verify(ctx context.Context, role, email, code string) (bool, error)
}

type otpService struct {
	rdb         *redis.Client
	registrants repository.RegistrantRepository
	mail        mailer.Mailer
	log         zerolog.Logger
}

func NewOTPService(rdb *redis.Client, registrants repository.RegistrantRepository, mail mailer.Mailer, log zerolog.Logger) OTPService {
	return &otpService{rdb: rdb, registrants: registrants, mail: mail, log: log}
}

func otpKey(role, email string) string {
	return fmt.Sprintf("otp:%s:%s", role, email)
}

func (s *otpService) Request(ctx context.Context, roleName, email string) error {
	role, ok := models.ParseRole(roleName)
	if !ok {
		return ErrUnknownRole
	}

	code := ticketcode.Numeric(6)
	if err := s.rdb.SetEx(ctx, otpKey(string(role), email), code, OTPTTL).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	err := s.mail.Send(ctx, mailer.Message{
		To:      email,
		Subject: "Your verification code",
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(OTPTTL.Minutes())),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("otp mail send failed")
		return err
	}
	return nil
}

func (s *otpService) Verify(ctx context.Context, roleName, email, code string) (bool, error) {
	role, ok := models.ParseRole(roleName)
	if !ok {
		return false, ErrUnknownRole
	}

	stored, err := s.rdb.GetDel(ctx, otpKey(string(role), email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("read otp: %w", err)
	}
	if stored != code {
		return false, nil
	}

	if err := s.registrants.SetEmailVerified(ctx, role, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("could not flag email verified")
	}
	return true, nil
}
