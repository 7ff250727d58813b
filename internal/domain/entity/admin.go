package entity

// Admin is the administrator credential record. There is a single
// privilege tier; IsAdmin exists for parity with the seed data and is
// not consulted for per-action authorization.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
}
