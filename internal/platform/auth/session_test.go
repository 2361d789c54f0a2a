package auth

import (
	"testing"
	"time"
)

func TestSessionManager_IssueAndParse(t *testing.T) {
	m := NewSessionManager("test-secret")

	identity := &Identity{ID: "acct-42", Name: "สมชาย ใจดี"}
	token, err := m.Issue(identity, "healthid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.Subject != "acct-42" {
		t.Errorf("expected subject acct-42, got %s", claims.Subject)
	}
	if claims.Provider != "healthid" {
		t.Errorf("expected provider healthid, got %s", claims.Provider)
	}
	if claims.AccountID != "acct-42" || claims.NameTH != "สมชาย ใจดี" {
		t.Errorf("expected provider snapshot on claims, got %+v", claims)
	}
}

func TestSessionManager_CredentialsOmitSnapshot(t *testing.T) {
	m := NewSessionManager("test-secret")

	token, err := m.Issue(&Identity{ID: "1", Name: "Admin User", Email: "admin@example.com"}, "credentials")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.AccountID != "" || claims.NameTH != "" {
		t.Errorf("credentials sessions should not carry a provider snapshot: %+v", claims)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
}

func TestSessionManager_MaxAge(t *testing.T) {
	m := NewSessionManager("test-secret")
	token, _ := m.Issue(&Identity{ID: "1"}, "credentials")
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != SessionMaxAge {
		t.Errorf("expected %v lifetime, got %v", SessionMaxAge, lifetime)
	}
}

func TestSessionManager_WrongSecret(t *testing.T) {
	token, _ := NewSessionManager("secret-a").Issue(&Identity{ID: "1"}, "credentials")
	if _, err := NewSessionManager("secret-b").Parse(token); err == nil {
		t.Error("expected parse error with wrong secret")
	}
}

func TestSessionManager_Garbage(t *testing.T) {
	m := NewSessionManager("test-secret")
	if _, err := m.Parse("not.a.token"); err == nil {
		t.Error("expected parse error for garbage token")
	}
}

func TestSessionManager_Cookie(t *testing.T) {
	m := NewSessionManager("test-secret")

	cookie := m.Cookie("tok", true)
	if cookie.Name != SessionCookieName {
		t.Errorf("unexpected cookie name %s", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}
	if !cookie.Secure {
		t.Error("expected secure cookie")
	}
	if cookie.MaxAge != int(SessionMaxAge/time.Second) {
		t.Errorf("expected max age %d, got %d", int(SessionMaxAge/time.Second), cookie.MaxAge)
	}

	clear := m.ClearCookie()
	if clear.MaxAge >= 0 || clear.Value != "" {
		t.Errorf("clear cookie should expire immediately: %+v", clear)
	}
}
