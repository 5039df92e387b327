package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSignVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour, false)

	token, err := iss.Sign(12, "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id, _ := claims.AdminID()
	if id != 12 || claims.Username != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) != time.Hour {
		t.Errorf("unexpected lifetime")
	}
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour, false)
	token, _ := iss.Sign(1, "admin")

	other := NewIssuer("other-secret", time.Hour, false)
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret accepted: %v", err)
	}

	expired := NewIssuer("secret", time.Hour, false)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Sign(1, "admin")
	if _, err := iss.Verify(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted: %v", err)
	}

	for _, bad := range []string{"", "garbage", token + "x"} {
		if _, err := iss.Verify(bad); err == nil {
			t.Errorf("token %q accepted", bad)
		}
	}
}

func TestCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	iss := NewIssuer("secret", 7*24*time.Hour, true)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	iss.SetCookie(c, "tok")

	header := rec.Header().Get("Set-Cookie")
	for _, want := range []string{"mcms_session=tok", "Path=/", "Max-Age=604800", "HttpOnly", "Secure", "SameSite=Lax"} {
		if !strings.Contains(header, want) {
			t.Errorf("cookie %q missing %q", header, want)
		}
	}
}
