package postgres

import (
	"funntour/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preload paths resolving the geographic chain for each aggregate.
// Soft-deleted ancestors are filtered by GORM and come back as nil.
const (
	preloadStateCountry     = "Country"
	preloadCityStateCountry = "State.Country"
	preloadAddressChain     = "City.State.Country"
	preloadUserAddressChain = "Address.City.State.Country"
	preloadUserProfile      = "Profile"
)

func paginate(page repository.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("id").Offset(page.Skip).Limit(page.Limit)
	}
}

func excludingID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}

		return db.Where("id <> ?", id)
	}
}

// nameMatchFirst orders rows whose name equals name (case-insensitively) ahead of
// code-only matches, so conflict lookups report the name collision first.
// Pair it with Take: First replaces the ordering with the primary key.
func nameMatchFirst(name string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN lower(name) = lower(?) THEN 0 ELSE 1 END, id",
			Vars:               []any{name},
			WithoutParentheses: true,
		}})
	}
}
