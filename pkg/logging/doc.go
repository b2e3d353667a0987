// Package logging configures structured logging for the TestHub client.
//
// It wraps log/slog so the dispatcher, the agent runner and the CLI share one
// logger setup:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("dispatching request", "endpoint", "uiautomation.RunTestCase")
//
// Components accept a *slog.Logger through an option. When none is given they
// fall back to Nop().
//
// Tee fans one record out to several handlers, and ForwardHandler batches
// records for a remote sink such as the platform's task log endpoint.
package logging
