package impl

import (
	"context"
	"log/slog"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/constants"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/domain/service"
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"go.uber.org/fx"
)

const (
	tokenValidMessage   = "Token válido"
	tokenInvalidMessage = "Token inválido ou expirado"
	tokenNoUserMessage  = "Usuário não encontrado"
)

type passwordResetService struct {
	users       usecase.UserUsecase
	resetTokens service.ResetTokenService
	store       repository.ResetTokenStore
	notifier    service.PasswordResetNotifier
	metrics     service.ResetTokenMetrics
	events      accountEvents
	logger      *slog.Logger
}

// PasswordResetServiceParams holds dependencies for the password-recovery flow, injected by Fx.
type PasswordResetServiceParams struct {
	fx.In

	Users          usecase.UserUsecase
	ResetTokens    service.ResetTokenService
	TokenStore     repository.ResetTokenStore
	Notifier       service.PasswordResetNotifier `optional:"true"`
	EventPublisher service.EventPublisher        `optional:"true"`
	Metrics        service.ResetTokenMetrics     `optional:"true"`
	Logger         *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(params PasswordResetServiceParams) usecase.PasswordResetUsecase {
	return &passwordResetService{
		users:       params.Users,
		resetTokens: params.ResetTokens,
		store:       params.TokenStore,
		notifier:    params.Notifier,
		metrics:     params.Metrics,
		events:      newAccountEvents(params.EventPublisher),
		logger:      params.Logger,
	}
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *passwordResetService) GenerateResetToken(ctx context.Context, credential string) (*entity.PasswordResetTicket, error) {
	user, err := srv.users.FindByCredential(ctx, credential)
	if err != nil {
		return nil, err
	}

	token, err := srv.resetTokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue reset token")
	}
	if srv.metrics != nil {
		srv.metrics.IncrementResetTokensIssued()
	}

	srv.log(ctx).Info("Password reset token issued",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("token_id", token.TokenID),
		slog.Time("expires_at", token.ExpiresAt),
	)

	return &entity.PasswordResetTicket{
		Token: token,
		Recipient: &entity.ResetRecipient{
			UserID:   user.ID,
			Name:     user.Name,
			TaxID:    user.TaxID,
			Email:    user.EmailValue(),
			WhatsApp: user.WhatsAppValue(),
		},
	}, nil
}

func (srv *passwordResetService) VerifyResetToken(ctx context.Context, token string) (uint, error) {
	claims, err := srv.verify(ctx, token)
	if err != nil {
		return 0, err
	}

	return claims.UserID, nil
}

// verify checks signature and expiry, then rejects tokens that were already used.
func (srv *passwordResetService) verify(ctx context.Context, token string) (*service.ResetTokenClaims, error) {
	claims, err := srv.resetTokens.Verify(token)
	if err != nil {
		srv.reject(ctx, "verification failed")

		return nil, domainerrors.ErrResetTokenInvalid
	}

	consumed, err := srv.store.IsConsumed(ctx, claims.TokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check reset token")
	}
	if consumed {
		srv.reject(ctx, "token already used")

		return nil, domainerrors.ErrResetTokenInvalid
	}

	return claims, nil
}

func (srv *passwordResetService) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	claims, err := srv.verify(ctx, token)
	if err != nil {
		return err
	}

	// The token is consumed only once the new password is hashed and the user
	// is found, so a rejected password leaves it usable.
	return srv.users.ResetPassword(ctx, claims.UserID, newPassword, func(ctx context.Context) error {
		return srv.consume(ctx, claims)
	})
}

// consume marks the token as used. It is atomic, so of two concurrent resets
// with one token only one succeeds.
func (srv *passwordResetService) consume(ctx context.Context, claims *service.ResetTokenClaims) error {
	fresh, err := srv.store.Consume(ctx, claims.TokenID, claims.UserID, claims.ExpiresAt)
	if err != nil {
		return errors.Wrap(err, "failed to consume reset token")
	}
	if !fresh {
		srv.reject(ctx, "token already used")

		return domainerrors.ErrResetTokenInvalid
	}
	if srv.metrics != nil {
		srv.metrics.IncrementResetTokensConsumed()
	}

	return nil
}

// RequestPasswordReset never reveals whether the credential exists: an unknown one yields an empty output.
func (srv *passwordResetService) RequestPasswordReset(ctx context.Context, credential string) (*usecase.PasswordResetRequestOutput, error) {
	ticket, err := srv.GenerateResetToken(ctx, credential)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Info("Password reset requested for unknown credential")

		return &usecase.PasswordResetRequestOutput{}, nil
	}
	if err != nil {
		return nil, err
	}

	output := &usecase.PasswordResetRequestOutput{Ticket: ticket}
	if srv.notifier != nil {
		output.Report = srv.notifier.NotifyPasswordReset(ctx, ticket.Recipient, ticket.Token.Token, ticket.Token.ExpiresAt)
	}

	srv.log(ctx).Info("Password reset requested",
		slog.Uint64("user_id", uint64(ticket.Recipient.UserID)),
		slog.Bool("email_sent", output.Report.Email),
		slog.Bool("whatsapp_sent", output.Report.WhatsApp),
	)
	srv.events.publish(ctx, srv.log(ctx), constants.EventPasswordResetRequested, ticket.Recipient.UserID)

	return output, nil
}

func (srv *passwordResetService) ValidateResetToken(ctx context.Context, token string) (*usecase.TokenValidationOutput, error) {
	userID, err := srv.VerifyResetToken(ctx, token)
	if errors.Is(err, domainerrors.ErrResetTokenInvalid) {
		return &usecase.TokenValidationOutput{Message: tokenInvalidMessage}, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = srv.users.GetUser(ctx, userID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return &usecase.TokenValidationOutput{Message: tokenNoUserMessage}, nil
	}
	if err != nil {
		return nil, err
	}

	return &usecase.TokenValidationOutput{
		Valid:   true,
		UserID:  userID,
		Message: tokenValidMessage,
	}, nil
}

func (srv *passwordResetService) reject(ctx context.Context, reason string) {
	if srv.metrics != nil {
		srv.metrics.IncrementResetTokensRejected()
	}

	srv.log(ctx).Info("Password reset token rejected", slog.String("reason", reason))
}
