package leavetype

import (
	leavetypeerrors "go-leave/internal/leavetype/errors"
	"go-leave/internal/shared/dberr"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsNotFound(err) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	if dberr.IsUniqueViolation(err, "uq_leave_type_name") {
		return leavetypeerrors.ErrLeaveTypeNameTaken
	}
	return err
}
