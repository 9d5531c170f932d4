// Package middleware groups the HTTP middleware of the audit service.
//
//   - auth: rejects requests without the configured X-API-Key.
//   - rayid: tags each request with an X-Ray-ID, stored in locals as
//     "ray_id" so logger.WithRayID can attach it to log lines.
package middleware
