// Package logging builds zerolog loggers from configuration and carries the
// logger and a per-invocation trace ID through context.Context.
package logging
