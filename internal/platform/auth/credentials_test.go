package auth

import "testing"

func TestStaticCredentials_Valid(t *testing.T) {
	creds := NewStaticCredentials()

	identity := creds.Authenticate("admin", "password123")
	if identity == nil {
		t.Fatal("expected identity for valid pair")
	}
	if identity.ID != "1" || identity.Name != "Admin User" {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestStaticCredentials_Invalid(t *testing.T) {
	creds := NewStaticCredentials()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "password123"},
		{"empty username", "", "password123"},
		{"empty password", "admin", ""},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		if creds.Authenticate(tc.username, tc.password) != nil {
			t.Errorf("%s: expected nil identity", tc.name)
		}
	}
}

func TestStaticCredentials_CopyReturned(t *testing.T) {
	creds := NewStaticCredentials()
	a := creds.Authenticate("admin", "password123")
	a.Name = "mutated"

	b := creds.Authenticate("admin", "password123")
	if b.Name != "Admin User" {
		t.Error("Authenticate must return a copy, not shared state")
	}
}
