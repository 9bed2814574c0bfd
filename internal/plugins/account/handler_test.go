package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/courtside-app/courtside/internal/apperror"
	"github.com/courtside-app/courtside/internal/plugins/auth"
)

// stubAuthService implements auth.AuthService with overridable functions.
type stubAuthService struct {
	changePasswordFn func(ctx context.Context, userID, current, updated string) error
	destroyed        []string
}

func (s *stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (*auth.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, input auth.LoginInput) (string, *auth.Session, error) {
	return "", nil, nil
}

func (s *stubAuthService) ValidateSession(ctx context.Context, token string) (*auth.Session, error) {
	return nil, apperror.NewUnauthorized("no session")
}

func (s *stubAuthService) DestroySession(ctx context.Context, token string) error {
	s.destroyed = append(s.destroyed, token)
	return nil
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, updated string) error {
	if s.changePasswordFn != nil {
		return s.changePasswordFn(ctx, userID, current, updated)
	}
	return nil
}

func (s *stubAuthService) IssueLogoutNonce(ctx context.Context, userID string) (string, error) {
	return "", nil
}

func (s *stubAuthService) ConsumeLogoutNonce(ctx context.Context, nonce, userID string) (bool, error) {
	return false, nil
}

func newPasswordContext(t *testing.T, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/account/password", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: "courtside_session", Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	auth.WithSession(c, &auth.Session{UserID: "user-123", Email: "a@example.com", Name: "Alice"})
	return c, rec
}

func TestChangePassword_SuccessEndsSession(t *testing.T) {
	var gotCurrent, gotNew string
	svc := &stubAuthService{
		changePasswordFn: func(ctx context.Context, userID, current, updated string) error {
			if userID != "user-123" {
				t.Errorf("expected user-123, got %s", userID)
			}
			gotCurrent, gotNew = current, updated
			return nil
		},
	}
	h := NewHandler(svc, nil)

	c, rec := newPasswordContext(t, url.Values{
		"current_password": {"old-password"},
		"new_password":     {"new-password-456"},
		"confirm_password": {"new-password-456"},
	})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login?password=changed" {
		t.Errorf("expected redirect to /login?password=changed, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if gotCurrent != "old-password" || gotNew != "new-password-456" {
		t.Errorf("passwords not passed through: %q/%q", gotCurrent, gotNew)
	}
	if len(svc.destroyed) != 1 || svc.destroyed[0] != "tok-1" {
		t.Errorf("expected current session destroyed, got %v", svc.destroyed)
	}
}

func TestChangePassword_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"short password", url.Values{"current_password": {"x"}, "new_password": {"short"}, "confirm_password": {"short"}}},
		{"mismatch", url.Values{"current_password": {"x"}, "new_password": {"new-password-456"}, "confirm_password": {"different"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				changePasswordFn: func(ctx context.Context, userID, current, updated string) error {
					t.Error("service must not be called on invalid input")
					return nil
				},
			}
			h := NewHandler(svc, nil)

			c, _ := newPasswordContext(t, tt.form)
			err := h.ChangePassword(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if apperror.SafeCode(err) != 422 {
				t.Errorf("expected 422, got %d", apperror.SafeCode(err))
			}
		})
	}
}

func TestChangePassword_WrongCurrentKeepsSession(t *testing.T) {
	svc := &stubAuthService{
		changePasswordFn: func(ctx context.Context, userID, current, updated string) error {
			return apperror.NewUnauthorized("current password is incorrect")
		},
	}
	h := NewHandler(svc, nil)

	c, _ := newPasswordContext(t, url.Values{
		"current_password": {"wrong"},
		"new_password":     {"new-password-456"},
		"confirm_password": {"new-password-456"},
	})

	err := h.ChangePassword(c)
	if apperror.SafeCode(err) != 401 {
		t.Fatalf("expected 401, got %v", err)
	}
	if len(svc.destroyed) != 0 {
		t.Error("session must survive a failed password change")
	}
}
