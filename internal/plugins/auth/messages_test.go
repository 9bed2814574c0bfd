package auth

import "testing"

func TestFailureMessage_KnownCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{CodeInvalidEmail, "Invalid email address."},
		{CodeInvalidUsername, "No account found with that email."},
		{CodeIncorrectPassword, "Incorrect password."},
		{CodeInvalidPassword, "Incorrect password."},
		{CodeEmptyUsername, "Please enter your email."},
		{CodeEmptyPassword, "Please enter your password."},
		{CodeAuthFailed, "Login failed. Please try again."},
		{CodeTooManyAttempts, "Too many attempts. Try again in 15 minutes."},
		{CodeExpiredSession, "Session expired. Please log in again."},
	}

	for _, tt := range tests {
		if got := FailureMessage(tt.code); got != tt.want {
			t.Errorf("FailureMessage(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFailureMessage_UnknownCodeIsGeneric(t *testing.T) {
	// Attacker-controlled query values must never echo through.
	for _, code := range []string{"", "bogus", "<script>", "incorrect_password "} {
		if got := FailureMessage(code); got != genericFailure {
			t.Errorf("FailureMessage(%q) = %q, want generic", code, got)
		}
	}
}
