package logger

import "go.uber.org/zap"

// Standard fields used across the authenticators. Keeping the keys in one
// place keeps log queries stable.

// Provider creates a field for the identity provider ("facebook", "twitter").
func Provider(v string) zap.Field {
	return zap.String("provider", v)
}

// RunID creates a field for the id of one authenticator run.
func RunID(v string) zap.Field {
	return zap.String("run_id", v)
}

// Kind creates a field for a problem kind.
func Kind(v string) zap.Field {
	return zap.String("kind", v)
}

// Status creates a field for an HTTP status code.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Code creates a field for a provider or transport error code.
func Code(v int) zap.Field {
	return zap.Int("code", v)
}

// Account creates a field for an account identifier.
// Pass a masked value; raw identifiers must not reach the logs.
func Account(v string) zap.Field {
	return zap.String("account", v)
}

// Count creates a field for a count.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// Op creates a field for the current operation.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err creates a field for an error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String creates a generic string field.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int creates a generic int field.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}

// Bool creates a generic bool field.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}
