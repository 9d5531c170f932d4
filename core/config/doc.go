// Package config loads application settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file, with defaults declared as `default` struct tags on each section.
// Keys are nested with underscores: CHECK_ALGORITHM sets check.algorithm and
// STORAGE_ENDPOINT sets storage.endpoint.
//
// # Sections
//   - Server: HTTP listen port and API key for the audit service
//   - Storage: S3/MinIO credentials for s3:// archive locations
//   - Log: level and encoding
//   - Check: checksum algorithm, block sizes, strip level, coverage bound, wildcard syntax
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Check.Algorithm)
package config
