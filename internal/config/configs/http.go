package configs

// HTTP defines configuration for the HTTP server. PublicURL is the address
// the service is reachable at from outside; it is used when building share
// links that end up in QR codes.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// PublicURL is the externally visible base URL, without a trailing
	// slash.
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
}
