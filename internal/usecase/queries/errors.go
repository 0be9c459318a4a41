package queries

import (
	"hotelier/internal/infra"
	"hotelier/internal/pkg/errs"
)

// mapReadErr translates storage errors into usecase sentinels so handlers
// never inspect infrastructure error kinds.
func mapReadErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrStorageUnavailable)
	default:
		return err
	}
}
