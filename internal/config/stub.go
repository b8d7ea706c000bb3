package config

// StubConfig configures the bundled in-memory stand-in for the shop API.
// It exists for local development and tests only.
type StubConfig struct {
	Port          string // port to bind (STUB_PORT)
	JWTSecret     string // HS256 signing secret (STUB_JWT_SECRET)
	AdminUser     string // seeded admin username (STUB_ADMIN_USER)
	AdminPassword string // seeded admin password (STUB_ADMIN_PASSWORD)
}

// LoadStub reads the stub server configuration. The defaults line up
// with DefaultBaseURL so the client and the stub find each other out of
// the box.
func LoadStub() StubConfig {
	return StubConfig{
		Port:          getEnv("STUB_PORT", "8081"),
		JWTSecret:     getEnv("STUB_JWT_SECRET", "sweetshop-dev-secret"),
		AdminUser:     getEnv("STUB_ADMIN_USER", "admin"),
		AdminPassword: getEnv("STUB_ADMIN_PASSWORD", "admin"),
	}
}
