// Package config loads application settings with Viper and godotenv.
//
// Values are read from a config.yml file and then overridden by environment
// variables carrying the application prefix, after an optional .env file has
// been loaded into the environment.
//
// # Usage
//
//	settings, err := config.LoadSettings("lazyseq")
//	if err != nil {
//	    return err
//	}
//	logger.Init(settings.Logging)
//
// With the default prefix, LAZYSEQ_TRACING_SAMPLE_RATE=0.25 sets
// tracing.sample_rate. Settings.Validate reports invalid keys as an
// INVALID_ARGUMENT error.
package config
