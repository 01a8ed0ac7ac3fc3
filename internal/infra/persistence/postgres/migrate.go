package postgres

import (
	"context"

	"funntour/internal/errors"
	"funntour/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// uniqueIndexes enforce case-insensitive uniqueness among live rows only,
// so a soft-deleted record never blocks re-creating the same name.
var uniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_countries_name ON countries (lower(name)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_countries_code ON countries (upper(code)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_states_name ON states (country_id, lower(name)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_states_code ON states (country_id, upper(code)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cities_name ON cities (state_id, lower(name)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cities_code ON cities (state_id, upper(code)) WHERE deleted_at IS NULL AND code IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_profiles_description ON profiles (lower(description)) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_tax_id_digits ON users (tax_id_digits) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email)) WHERE deleted_at IS NULL AND email IS NOT NULL`,
}

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&model.CountryModel{},
		&model.StateModel{},
		&model.CityModel{},
		&model.AddressModel{},
		&model.ProfileModel{},
		&model.UserModel{},
		&model.ConsumedResetTokenModel{},
		&model.AccountEventModel{},
	}
}

// Migrate creates or updates the schema and the partial unique indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "failed to auto-migrate schema")
	}

	for _, stmt := range uniqueIndexes {
		if err := tx.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "failed to create index: %s", stmt)
		}
	}

	return nil
}

type tabler interface {
	TableName() string
}

// TableNames returns the table of every model in migration order.
func TableNames() ([]string, error) {
	models := Models()
	names := make([]string, 0, len(models))
	for _, m := range models {
		t, ok := m.(tabler)
		if !ok {
			return nil, errors.Errorf("model %T has no table name", m)
		}
		names = append(names, t.TableName())
	}

	return names, nil
}
