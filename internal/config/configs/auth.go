package configs

// Auth configures viewer identity resolution. Tracking accepts anonymous
// viewers, so an empty secret simply means every viewer resolves as
// anonymous.
type Auth struct {
	// JWTSecret verifies bearer tokens issued by the auth provider.
	JWTSecret string `env:"JWT_SECRET"`
}
