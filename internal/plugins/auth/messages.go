package auth

// Login failure codes carried in the login page's error query parameter.
// The codes and their messages are a fixed public contract (bookmarked
// links and the mobile wrapper depend on them), so treat the table below
// as frozen.
const (
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidUsername   = "invalid_username"
	CodeIncorrectPassword = "incorrect_password"
	CodeInvalidPassword   = "invalid_password"
	CodeEmptyUsername     = "empty_username"
	CodeEmptyPassword     = "empty_password"
	CodeAuthFailed        = "authentication_failed"
	CodeTooManyAttempts   = "too_many_attempts"
	CodeExpiredSession    = "expired_session"
)

// genericFailure is shown for unrecognized codes and for a bare
// login=failed flag with no code.
const genericFailure = "Login failed. Please try again."

// failureMessages maps error codes to their user-visible text.
var failureMessages = map[string]string{
	CodeInvalidEmail:      "Invalid email address.",
	CodeInvalidUsername:   "No account found with that email.",
	CodeIncorrectPassword: "Incorrect password.",
	CodeInvalidPassword:   "Incorrect password.",
	CodeEmptyUsername:     "Please enter your email.",
	CodeEmptyPassword:     "Please enter your password.",
	CodeAuthFailed:        genericFailure,
	CodeTooManyAttempts:   "Too many attempts. Try again in 15 minutes.",
	CodeExpiredSession:    "Session expired. Please log in again.",
}

// FailureMessage returns the user-visible message for a login error code.
// Unrecognized codes fall back to the generic failure message.
func FailureMessage(code string) string {
	if msg, ok := failureMessages[code]; ok {
		return msg
	}
	return genericFailure
}

// Success messages resolved from the login page's status query flags.
const (
	msgCheckEmail      = "Check your email to confirm your account."
	msgPasswordChanged = "Your password has been changed. Please log in."
	msgRegistered      = "Account created. You can now log in."
	msgLoggedOut       = "You have been logged out."
)
