// Package loader registers HTTP features and mounts their routes.
//
// Each feature implements Feature. The Manager keeps them in registration
// order and LoadAll mounts every enabled one on the application router.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
