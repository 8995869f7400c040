// Package errors provides structured error handling with error codes for simple-account.
//
// This package standardizes error handling across all services with typed error codes,
// structured error details, and automatic HTTP status code mapping.
//
// # Basic Usage
//
// Creating errors with codes:
//
//	import "github.com/tendant/simple-account/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeAccountNotFound, "account not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCodeInvalidInput, "invalid page: %d", page)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query database")
//
// # Error Codes
//
// All error codes are strongly typed and map to a wire status:
//
// 400 Bad Request:
//   - ErrCodeInvalidInput
//   - ErrCodePasswordComplexity
//
// 404 Not Found:
//   - ErrCodeNotFound
//   - ErrCodeAccountNotFound
//   - ErrCodePageNotFound
//
// 409 Conflict:
//   - ErrCodeConflict
//   - ErrCodeAccountAlreadyExists
//   - ErrCodeAccountBlocked
//   - ErrCodeAdminExists
//
// 500 Internal Server Error:
//   - ErrCodeInternal
//   - ErrCodeReferenceDataMissing (reference rows absent, bootstrap did not run)
//
// # Checking Error Codes
//
// Use IsCode and GetCode to branch on failure kinds:
//
//	if errors.IsCode(err, errors.ErrCodeAccountBlocked) {
//		// already blocked, report conflict
//	}
//
//	status := errors.MapErrorCodeToHTTPStatus(errors.GetCode(err))
package errors
