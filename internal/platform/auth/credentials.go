package auth

// StaticCredentials accepts exactly one hardcoded username/password pair and
// returns a fixed identity for it. This is a development stand-in, not real
// verification: no hashing, no lookup store.
type StaticCredentials struct {
	username string
	password string
	identity Identity
}

// NewStaticCredentials creates the development credential checker.
func NewStaticCredentials() *StaticCredentials {
	return &StaticCredentials{
		username: "admin",
		password: "password123",
		identity: Identity{
			ID:    "1",
			Name:  "Admin User",
			Email: "admin@example.com",
		},
	}
}

// Authenticate returns the fixed identity when the pair matches, nil otherwise.
func (s *StaticCredentials) Authenticate(username, password string) *Identity {
	if username == "" || password == "" {
		return nil
	}
	if username != s.username || password != s.password {
		return nil
	}
	id := s.identity
	return &id
}
