package blend

import "log"

// Option configures behavior of Open that has no single universally
// correct default.
type Option func(*fileConfig) error

type fileConfig struct {
	logger           *log.Logger
	rejectCollisions bool
}

func defaultConfig() *fileConfig {
	return &fileConfig{logger: log.Default()}
}

// WithLogger overrides the *log.Logger used for soft-failure diagnostics
// (unknown nested structure types during pass 2). The default is
// log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *fileConfig) error {
		c.logger = l
		return nil
	}
}

// RejectFieldCollisions turns schema field-name collisions (e.g. a
// structure declaring both "*foo" and "foo", which clean to the same
// name) from the default last-write-wins tolerance into a hard
// ErrSchemaFieldCollision error. No well-formed writer emits such a
// structure, so the default stays permissive.
func RejectFieldCollisions() Option {
	return func(c *fileConfig) error {
		c.rejectCollisions = true
		return nil
	}
}
