// Package config loads runtime configuration for the onboarding CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with ONBOARDER_, after loading a dotenv
//     file (-e/-env-file, or ./.env when present).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the onboarding API
//	-d string   path to the local SQLite database
//	-t int      request timeout (seconds)
//	-i int      user directory refresh interval (seconds)
//	-l string   log level
//	-v string   start view
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3001",
//	  "database_path": "onboarder.db",
//	  "request_timeout": "10s",
//	  "poll_interval": "5s",
//	  "log_level": "info",
//	  "start_view": "welcome"
//	}
//
// # Environment
//
//	ONBOARDER_API_BASE_URL, ONBOARDER_DATABASE_PATH, ONBOARDER_REQUEST_TIMEOUT,
//	ONBOARDER_POLL_INTERVAL, ONBOARDER_LOG_LEVEL, ONBOARDER_START_VIEW
package config
