// Package logging provides the logging facade used by sealgo.
//
// The Logger interface wraps the part of log/slog the library needs, so
// applications can route records into their own logging stack or capture
// them in tests.
//
// # Default Implementation
//
//	// Use slog.Default()
//	logger := logging.New(nil)
//
//	// Use a custom handler
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	seal.SetLogger(logging.New(slog.New(handler)))
//
// # What Gets Logged
//
// The library logs rarely. Rejected encryption parameters are logged at
// Debug, deprecated entry points and handles leaked at Library.Close at
// Warn. Key generation is logged at Debug with the key material replaced by
// Redacted:
//
//	logger.Debug(ctx, "secret key generated", logging.Redacted("secret_key"))
//	// Logs: secret_key="[redacted]"
//
// # Security Considerations
//
//   - Never log secret keys or decrypted plaintexts
//   - Use logging.Redacted() to mark attributes that were removed
//   - Serialized ciphertexts are not secret, but they are large; log sizes,
//     not contents
package logging
