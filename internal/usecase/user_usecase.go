package usecase

import (
	"context"
	"time"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to register a user together with its address.
type CreateUserInput struct {
	ProfileID     uint
	TaxID         string
	Name          string
	Email         *string
	Phone         *string
	WhatsApp      *string
	BirthDate     *time.Time
	AcceptedTerms *bool
	IsAdult       *bool
	Password      string
	Address       AddressInput
}

// UpdateUserInput is a partial user update. A blank Email, Phone or WhatsApp clears the field.
type UpdateUserInput struct {
	ProfileID     *uint
	TaxID         *string
	Name          *string
	Email         *string
	Phone         *string
	WhatsApp      *string
	BirthDate     *time.Time
	AcceptedTerms *bool
	IsAdult       *bool
	Password      *string
	Address       *AddressPatch
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	TaxID    string
	Password string
}

// UploadAvatarInput carries an uploaded avatar image.
type UploadAvatarInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Data        []byte
}

// --- Output DTOs ---

// LoginOutput returns the authenticated user and a short-lived access token.
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// UserUsecase defines the user aggregate operations.
// Returned users carry Profile and Address.City.State.Country.
type UserUsecase interface {
	ListUsers(ctx context.Context, page repository.Page) ([]*entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) error

	// Authenticate returns ErrInvalidCredentials for an unknown tax id or a wrong password.
	Authenticate(ctx context.Context, taxID, password string) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ChangePassword returns ErrCurrentPasswordMismatch when current is wrong.
	ChangePassword(ctx context.Context, id uint, current, newPassword string) error

	// ResetPassword sets a new password without checking the old one. A non-nil
	// authorize runs once the password is hashed and the user is known to
	// exist, right before the update; its error aborts the reset.
	ResetPassword(ctx context.Context, id uint, newPassword string, authorize func(context.Context) error) error

	// FindByCredential resolves a tax id (any punctuation) or an email address.
	FindByCredential(ctx context.Context, credential string) (*entity.User, error)

	UploadAvatar(ctx context.Context, input UploadAvatarInput) (*entity.User, error)
}
