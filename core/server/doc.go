// Package server holds the HTTP server configuration for the audit service.
//
// The start command reads Config to choose the listen address, the request
// body limit and whether the X-API-Key header is enforced.
package server
