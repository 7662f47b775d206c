// Package log provides the wikinav logger: a standard slog logger whose
// handler masks credentials and shortens long values before they are
// written.
//
// # Redaction
//
// The RedactingHandler masks:
//   - attributes whose key names a credential (api_key, authorization, token, ...)
//   - string values that look like credentials (OpenAI "sk-" keys, bearer
//     and basic auth headers, JWTs, long opaque tokens)
//
// Values are masked even in verbose mode, so logs can be shared safely.
//
// # Truncation
//
// String values longer than MaxValueLength runes are cut and suffixed with
// an ellipsis. Target summaries and page texts would otherwise flood the
// terminal at debug level.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose, false)
//	slog.SetDefault(logger)
//	logger.Info("scorer ready", "kind", "openai", "api_key", key) // api_key=***REDACTED***
package log
