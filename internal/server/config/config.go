// Package config handles configuration for the server component,
// including defaults, dotenv/environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the hoverboard server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses for the REST and gRPC APIs.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs. Do not use the default in prod.
//   - TokenAlgorithm: HS256, HS384 or HS512.
//   - AccessTokenValidityDuration: access token lifetime.
//   - BcryptCost: password hashing cost.
//   - SeedSampleData: create the demo user and projects on startup.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: media storage.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	TokenAlgorithm              string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	SeedSampleData              bool
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8001"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "your-secret-key-change-in-production"
	c.TokenAlgorithm = "HS256"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 12
	c.SeedSampleData = true
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then the environment
// (optionally seeded from a .env file), then an optional JSON file and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
