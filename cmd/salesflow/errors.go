package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/salesflow/internal/cli"
	"github.com/Veraticus/salesflow/internal/common"
)

// exitMessage renders err for the final line before exiting. Failures that
// left the report intact, such as a failed export, are shown as warnings.
func exitMessage(err error) string {
	if common.IsFatal(err) {
		return cli.FormatError(describeError(err))
	}
	return cli.FormatWarning(describeError(err))
}

// describeError turns pipeline errors into the message shown on exit.
func describeError(err error) string {
	var schemaErr *common.SchemaError
	var monthErr *common.MonthError

	switch {
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("%v\nThe source table must have Month, Revenue and Expenses columns.", err)
	case errors.As(err, &monthErr):
		return fmt.Sprintf("%v\nUse English month names (January) or abbreviations (Jan), each month at most once.", err)
	case errors.Is(err, common.ErrEmptySource):
		return fmt.Sprintf("%v\nThe file needs at least a header row.", err)
	default:
		return err.Error()
	}
}
