package goals

import (
	"fmt"

	appErrors "goalmanager/internal/errors"
)

func storageError(op string, err error) error {
	return appErrors.New(appErrors.CodeStorage, fmt.Sprintf("%s: %v", op, err), err)
}

func createError(err error) error {
	return appErrors.New(appErrors.CodeCreateFailed, fmt.Sprintf("create goal: %v", err), err)
}

func parseError(column string, err error) error {
	return appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("parse goal %s: %v", column, err), err)
}

func notFoundError(id string) error {
	return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("goal %s not found", id), nil)
}
