package persistent

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Authorize decides whether the caller may mutate a row owned by ownerID.
// A non-nil error aborts the surrounding transaction and is returned as is.
type Authorize func(ownerID string) error

// isUUID reports whether id can match a uuid key. PostgreSQL rejects
// malformed ids with a syntax error instead of matching no rows.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lockOwner reads the owner of row id and holds a row lock on it until tx ends.
func lockOwner(tx *gorm.DB, table interface{}, id string) (string, error) {
	if !isUUID(id) {
		return "", gorm.ErrRecordNotFound
	}

	var row struct {
		UserID string
	}
	err := tx.Model(table).
		Select("user_id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&row).Error
	return row.UserID, err
}

type cascadeStep struct {
	name string
	run  func(tx *gorm.DB) error
}

func runSteps(tx *gorm.DB, steps []cascadeStep) error {
	for _, step := range steps {
		if err := step.run(tx); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}
