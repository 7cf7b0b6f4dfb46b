// Package pg wires PostgreSQL through pgx/v5.
//
// Connect builds a *pgxpool.Pool from Config (populated from PG_* env vars)
// and retries until the database answers a ping. Migrate runs the embedded
// goose migrations against the same pool, and Healthcheck adapts the pool
// to the readiness probe signature used by httpserver.HealthCheckHandler.
//
// IsNotFoundError and IsDuplicateKeyError classify pgx errors so stores can
// map them onto their own sentinel errors.
package pg
