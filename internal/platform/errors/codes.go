// Package errors provides structured error handling for the tracker.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Identity errors
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeCredentialsInvalid Code = "CREDENTIALS_INVALID"

	// Project errors
	CodeProjectNameEmpty        Code = "PROJECT_NAME_EMPTY"
	CodeProjectDescriptionEmpty Code = "PROJECT_DESCRIPTION_EMPTY"
	CodeProjectInvalidStatus    Code = "PROJECT_INVALID_STATUS"
	CodeProjectNotFound         Code = "PROJECT_NOT_FOUND"

	// Task errors
	CodeTaskNameEmpty        Code = "TASK_NAME_EMPTY"
	CodeTaskDescriptionEmpty Code = "TASK_DESCRIPTION_EMPTY"
	CodeTaskInvalidStatus    Code = "TASK_INVALID_STATUS"
	CodeTaskInvalidProgress  Code = "TASK_INVALID_PROGRESS"
	CodeTaskNotFound         Code = "TASK_NOT_FOUND"
	CodeTaskEmptyProjectID   Code = "TASK_EMPTY_PROJECT_ID"
	CodeTaskEmptyAssignee    Code = "TASK_EMPTY_ASSIGNEE"

	// User errors
	CodeUserNotFound      Code = "USER_NOT_FOUND"
	CodeUsernameTaken     Code = "USERNAME_TAKEN"
	CodeUserFieldsMissing Code = "USER_FIELDS_MISSING"
	CodeUserInvalidRole   Code = "USER_INVALID_ROLE"

	// Request errors
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// Storage errors
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeTimeout          Code = "TIMEOUT"
)

// HTTPStatus maps the code to the HTTP status the API surfaces.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated, CodeCredentialsInvalid:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeProjectNotFound, CodeTaskNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeUsernameTaken:
		return http.StatusConflict
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeTimeout, CodeUnknown:
		return http.StatusInternalServerError
	case CodeProjectNameEmpty, CodeProjectDescriptionEmpty, CodeProjectInvalidStatus,
		CodeTaskNameEmpty, CodeTaskDescriptionEmpty, CodeTaskInvalidStatus,
		CodeTaskInvalidProgress, CodeTaskEmptyProjectID, CodeTaskEmptyAssignee,
		CodeUserFieldsMissing, CodeUserInvalidRole, CodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
