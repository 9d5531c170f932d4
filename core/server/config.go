package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret required in the X-API-Key header. Empty disables
	// authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimit caps request bodies in bytes.
	BodyLimit int `mapstructure:"body_limit" default:"1048576"`
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
