package core

// Error codes carried in Result.Error. Callers branch on Success and may
// inspect the code for UI messaging; the set is closed.
const (
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeInvalidSession     = "INVALID_SESSION"
	CodeUserNotFound       = "USER_NOT_FOUND"

	// Generic per-operation codes for unexpected storage faults.
	CodeRegistrationFailed = "REGISTRATION_FAILED"
	CodeLoginFailed        = "LOGIN_FAILED"
	CodeLogoutFailed       = "LOGOUT_FAILED"
	CodeGetUserFailed      = "GET_USER_FAILED"
	CodeUpdateFailed       = "UPDATE_FAILED"
)

// Result is the uniform response of every identity operation. Failures are
// data, never a Go error across the public boundary: Success is false,
// Message is user-displayable, and Error holds one of the codes above.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a success result.
func OK(message string, user *User) *Result {
	return &Result{Success: true, Message: message, User: user}
}

// Fail builds a failure result with an error code.
func Fail(message, code string) *Result {
	return &Result{Success: false, Message: message, Error: code}
}
