// Package audit exposes archive verification over HTTP.
//
// # Endpoints
//
//	POST /audit           verify an archive against a directory, with coverage
//	POST /audit/coverage  report on-disk files absent from an archive
//
// Both take a JSON Request. Archive locations may be local paths on the
// server or s3:// URIs served by the configured storage client.
//
// # Status codes
//
// Caller errors (missing archive, bad exclusion rule) map to 400, an unusable
// directory or a member with no counterpart to 422, an unreadable counterpart
// to 403. Mismatches are not an error: the response carries them with 200.
package audit
