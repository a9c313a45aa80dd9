package config

const authHeaderHashVar = "AUTH_HEADER_HASH"

type SecurityConfig interface {
	GetAuthHeaderHash() string
	GetMaxRequestBytes() int64
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetAuthHeaderHash is the bcrypt hash the authorization header must match. Empty disables the
// check.
func (Security) GetAuthHeaderHash() string {
	return GetEnv(authHeaderHashVar, "")
}

func (Security) GetMaxRequestBytes() int64 {
	return 1 << 20
}
