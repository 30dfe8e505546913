package auth

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type TokenManager interface {
	Issue(subject string) (string, error)
	Parse(token string) (string, error)
}
