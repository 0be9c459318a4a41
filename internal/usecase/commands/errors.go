package commands

import (
	"hotelier/internal/infra"
	"hotelier/internal/pkg/errs"
)

// mapWriteErr translates storage errors into usecase sentinels. An exclusion
// violation means a competing allocation committed the room first, which is
// insufficient availability from the loser's point of view.
func mapWriteErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindOverlap):
		return errs.Mark(err, errs.ErrInsufficientAvailability)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrStorageUnavailable)
	default:
		return err
	}
}
