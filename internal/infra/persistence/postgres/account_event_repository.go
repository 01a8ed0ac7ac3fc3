package postgres

import (
	"context"

	"funntour/internal/domain/entity"
	"funntour/internal/domain/repository"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountEventRepository implements the repository.AccountEventRepository interface.
type accountEventRepository struct {
	db *gorm.DB
}

// NewAccountEventRepository is the constructor for accountEventRepository.
func NewAccountEventRepository(db *gorm.DB) repository.AccountEventRepository {
	return &accountEventRepository{db: db}
}

// Record relies on the unique event_id so redelivered messages are absorbed.
func (repo *accountEventRepository) Record(ctx context.Context, event *entity.AccountEvent) (bool, error) {
	row := fromAccountEventDomain(event)
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return false, translateWriteError(result.Error, "failed to record account event")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	*event = *toAccountEventDomain(row)

	return true, nil
}

func (repo *accountEventRepository) ListByUser(ctx context.Context, userID uint, page repository.Page) ([]*entity.AccountEvent, error) {
	var rows []*model.AccountEventModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateReadError(err, "failed to list account events")
	}

	events := make([]*entity.AccountEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toAccountEventDomain(row))
	}

	return events, nil
}

// --- Mapper Functions ---

func toAccountEventDomain(data *model.AccountEventModel) *entity.AccountEvent {
	return &entity.AccountEvent{
		ID:         data.ID,
		EventID:    data.EventID,
		Type:       data.Type,
		UserID:     data.UserID,
		RequestID:  data.RequestID,
		OccurredAt: data.OccurredAt,
		ReceivedAt: data.ReceivedAt,
	}
}

func fromAccountEventDomain(data *entity.AccountEvent) *model.AccountEventModel {
	return &model.AccountEventModel{
		ID:         data.ID,
		EventID:    data.EventID,
		Type:       data.Type,
		UserID:     data.UserID,
		RequestID:  data.RequestID,
		OccurredAt: data.OccurredAt,
		ReceivedAt: data.ReceivedAt,
	}
}
