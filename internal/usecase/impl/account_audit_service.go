package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/constants"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/usecase"
)

var auditedEventTypes = []string{
	constants.EventUserCreated,
	constants.EventUserDeleted,
	constants.EventPasswordChanged,
	constants.EventPasswordResetRequested,
	constants.EventPasswordReset,
}

// accountAuditService implements the AccountAuditUsecase interface.
type accountAuditService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewAccountAuditService is the constructor for accountAuditService.
func NewAccountAuditService(params RegistryServiceParams) usecase.AccountAuditUsecase {
	return &accountAuditService{
		txManager: params.TxManager,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *accountAuditService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *accountAuditService) RecordEvent(ctx context.Context, event *entity.AccountEvent) error {
	switch {
	case event.EventID == "":
		return domainerrors.ErrValidationFailed.WithDetails("field 'event_id' is required")
	case event.UserID == 0:
		return domainerrors.ErrValidationFailed.WithDetails("field 'user_id' is required")
	case !slices.Contains(auditedEventTypes, event.Type):
		return domainerrors.ErrValidationFailed.WithDetails("unknown event type '" + event.Type + "'")
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = srv.now().UTC()
	}
	event.ReceivedAt = srv.now().UTC()

	var recorded bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		recorded, err = repoFactory.AccountEventRepo().Record(ctx, event)

		return translateRepoError(err, domainerrors.ErrNotFound, domainerrors.ErrConflict)
	})
	if err != nil {
		return err
	}

	if !recorded {
		srv.log(ctx).Info("Account event already recorded", slog.String("event_id", event.EventID))

		return nil
	}

	srv.log(ctx).Info("Account event recorded",
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.Type),
		slog.Uint64("user_id", uint64(event.UserID)),
	)

	return nil
}

func (srv *accountAuditService) ListUserEvents(ctx context.Context, userID uint, page repository.Page) ([]*entity.AccountEvent, error) {
	var events []*entity.AccountEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindByID(ctx, userID); err != nil {
			return translateRepoError(err, domainerrors.ErrUserNotFound, domainerrors.ErrUserConflict)
		}

		var err error
		events, err = repoFactory.AccountEventRepo().ListByUser(ctx, userID, page)

		return translateRepoError(err, domainerrors.ErrNotFound, domainerrors.ErrConflict)
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}
