// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
//
// Each configuration type is parsed once per process and cached, so
// independent components can call Load for the same type without
// re-reading the environment.
//
//	type CacheConfig struct {
//		ExpireMinutes int `env:"CACHE_EXPIRE_MINUTES" envDefault:"30"`
//	}
//
//	var cfg CacheConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package config
