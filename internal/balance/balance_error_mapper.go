package balance

import (
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/shared/dberr"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsNotFound(err) {
		return balanceerrors.ErrBalanceNotFound
	}
	return err
}
