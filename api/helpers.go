package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade"
	"github.com/elevatehq/palisade/store"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, palisade.ErrAccessDenied) {
		return forge.Forbidden(err.Error())
	}
	if errors.Is(err, palisade.ErrNotAuthenticated) {
		return forge.Forbidden(err.Error())
	}
	if errors.Is(err, palisade.ErrUnknownScope) {
		return forge.BadRequest(err.Error())
	}
	return err
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
