package services

import (
	"context"
	"crypto/subtle"
	"log"
	"time"

	"nagarseva-be/apperrors"
	"nagarseva-be/models"
	"nagarseva-be/repositories"
	"nagarseva-be/utils"
)

const (
	otpTTL         = 5 * time.Minute
	minPhoneLength = 10
)

// Notifier delivers one-time codes. Delivery failure never fails the
// request-code call.
type Notifier interface {
	SendOTP(phone, code string) error
}

// LogNotifier stands in for an SMS gateway in dev and test setups.
type LogNotifier struct{}

func (LogNotifier) SendOTP(phone, code string) error {
	log.Printf("[SMS mock] OTP for %s: %s", phone, code)
	return nil
}

// VerifyResult is the outcome of a successful code verification.
type VerifyResult struct {
	Identity *models.VerifiedIdentity
	IsNew    bool
}

// OTPService issues and verifies one-time codes and anchors verified phones
// to stable citizen identities.
type OTPService struct {
	identities repositories.IdentityRepository
	otps       repositories.OTPStore
	notifier   Notifier
	now        func() time.Time
}

// NewOTPService wires the identity issuer.
func NewOTPService(identities repositories.IdentityRepository, otps repositories.OTPStore, notifier Notifier) *OTPService {
	return &OTPService{identities: identities, otps: otps, notifier: notifier, now: time.Now}
}

// RequestCode generates a fresh 4-digit challenge for the phone, overwriting
// any outstanding one. It does not reveal whether an account already exists.
func (s *OTPService) RequestCode(ctx context.Context, phone string) error {
	if len(phone) < minPhoneLength {
		return apperrors.NewValidationError("a valid phone number is required")
	}

	otp := models.PendingOTP{
		Phone:     phone,
		Code:      utils.GenerateOTPCode(),
		ExpiresAt: s.now().Add(otpTTL),
	}
	if err := s.otps.Put(ctx, otp); err != nil {
		log.Println("Failed to store OTP challenge:", err)
		return apperrors.NewInternalError("failed to send verification code")
	}

	if err := s.notifier.SendOTP(phone, otp.Code); err != nil {
		// SMS is a soft dependency; the code is stored and verifiable.
		log.Println("OTP delivery failed:", err)
	}
	return nil
}

// VerifyCode checks the submitted code against the pending challenge.
// The challenge is consumed on success and on expiry, but kept on a plain
// mismatch so the citizen can retry within the window.
func (s *OTPService) VerifyCode(ctx context.Context, phone, code string) (*VerifyResult, error) {
	otp, err := s.otps.GetDelete(ctx, phone)
	if err == repositories.ErrNotFound {
		return nil, apperrors.NewValidationError("no pending verification for this phone")
	}
	if err != nil {
		log.Println("Failed to read OTP challenge:", err)
		return nil, apperrors.NewInternalError("failed to verify code")
	}

	if otp.Expired(s.now()) {
		// Stays consumed: an expired challenge is never reusable.
		return nil, apperrors.NewValidationError("verification code has expired")
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		// Restore the challenge so a retry with the right code still works.
		if putErr := s.otps.Put(ctx, *otp); putErr != nil {
			log.Println("Failed to restore OTP challenge:", putErr)
		}
		return nil, apperrors.NewUnauthorizedError("invalid verification code")
	}

	identity, err := s.identities.FindByPhone(ctx, phone)
	if err == repositories.ErrNotFound {
		identity = &models.VerifiedIdentity{
			Phone:     phone,
			CitizenID: utils.GenerateCitizenID(),
			JoinedAt:  s.now(),
		}
		if createErr := s.identities.Create(ctx, identity); createErr != nil {
			log.Println("Failed to create identity:", createErr)
			return nil, apperrors.NewInternalError("failed to verify code")
		}
		return &VerifyResult{Identity: identity, IsNew: true}, nil
	}
	if err != nil {
		log.Println("Failed to look up identity:", err)
		return nil, apperrors.NewInternalError("failed to verify code")
	}
	return &VerifyResult{Identity: identity, IsNew: false}, nil
}
