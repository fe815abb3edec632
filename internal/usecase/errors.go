package usecase

import (
	"context"
	"errors"
	"fmt"

	"buddyboost/internal/repo/persistent"
	"buddyboost/pkg/apperr"

	"gorm.io/gorm"
)

// requireOwner is the single ownership rule for every owner-scoped mutation.
// The repository calls it with the owner of the row it has locked.
func requireOwner(actorID, action, resource string) persistent.Authorize {
	return func(ownerID string) error {
		if ownerID != actorID {
			return apperr.Forbidden(fmt.Sprintf("Unauthorized to %s this %s", action, resource))
		}
		return nil
	}
}

// storeError maps a repository error onto an apperr kind. Errors that are
// already classified (for example from requireOwner) pass through.
func storeError(err error, notFound, fallback string) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperr.Unavailable("Service temporarily unavailable", err)
	}
	return apperr.Internal(fallback, err)
}
