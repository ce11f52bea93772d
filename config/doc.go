// Package config loads seqpipe settings.
//
// It uses Viper to read an optional YAML file and environment variables, and
// godotenv to load an optional .env file before environment lookup. Loaded
// settings have defaults applied and are validated through struct tags.
//
// # Usage
//
//	var s config.Settings
//	err := config.Load("reports", &s, config.WithConfigFile("seqpipe.yml"))
//	opts := pipeline.OptionsFromSettings(&s)
//
// Environment variables override file values using the SEQPIPE_ prefix with
// underscore-separated paths (e.g., SEQPIPE_PIPELINE_MAX_BUFFER).
package config
