package sheets

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSettings means the API key or the spreadsheet ID is unset.
	ErrMissingSettings = errors.New("sheets: API key and spreadsheet ID are required")

	// ErrPermissionDenied means the sheet is not shared publicly or the key
	// is wrong.
	ErrPermissionDenied = errors.New("sheets: permission denied; share the sheet as \"Anyone with the link can view\" and check the API key")

	// ErrSheetNotFound means the spreadsheet ID or the range name is wrong.
	ErrSheetNotFound = errors.New("sheets: spreadsheet or range not found; check the spreadsheet ID and range name")

	// ErrNoData means the range is empty.
	ErrNoData = errors.New("sheets: no data found in this range")

	// ErrNoValidRows means rows exist but none has a question and an answer.
	ErrNoValidRows = errors.New("sheets: no valid questions found in data rows (check columns C and E)")
)

// APIError is any other error reported by the Sheets API.
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("sheets: %s (%d): %s", e.Status, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("sheets: HTTP %d: %s", e.HTTPStatus, e.Message)
}
