// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header sent by the caller (for
// example a gateway in front of the service) or generates a UUIDv4. The ID is
// stored in the request context, echoed in the response header and picked up
// by the logger through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
