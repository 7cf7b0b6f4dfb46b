// Package logger builds the service's *slog.Logger.
//
// New applies functional options (format, level, static attributes,
// context extractors) and wraps the chosen slog handler in a
// LogHandlerDecorator that copies request-scoped values such as the request
// ID into every record. Attribute helpers in attr.go keep key names stable
// across packages:
//
//	log := logger.New(
//		logger.WithEnvironment(app.Env, app.Name),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "edition changelog recorded",
//		logger.SuiteID(suiteID),
//		logger.CorpID(corpID),
//	)
package logger
