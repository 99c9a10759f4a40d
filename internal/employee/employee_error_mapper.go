package employee

import (
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/dberr"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsNotFound(err) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if dberr.IsUniqueViolation(err, "uq_employee_tax_id") {
		return employeeerrors.ErrTaxIDAlreadyExists
	}
	return err
}
