// Package config loads service configuration from environment variables.
//
// Values are read from the process environment (and an optional .env file
// loaded once through github.com/joho/godotenv) into tagged structs with
// github.com/caarlos0/env/v11. Every configuration type is parsed at most
// once per process and served from an in-memory cache afterwards, so the
// storage, WeCom and HTTP layers can each ask for their own struct without
// re-reading the environment.
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//		return err
//	}
//
// App holds the settings that belong to the service itself rather than to
// one of its infrastructure packages.
package config
