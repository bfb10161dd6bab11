// Package config loads runtime configuration for the sessionkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. JSON, or TOML when
//     the name ends in .toml.
//  3. Environment variables prefixed with SESSIONKEEPER_, after loading an
//     optional .env file from the working directory.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the remote service
//	-d string     path of the local database
//	-t duration   per-request timeout
//	-l string     log level
//
// # File schema
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "db_path": "sessionkeeper.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Environment variables
//
//	SESSIONKEEPER_API_BASE_URL, SESSIONKEEPER_DB_PATH,
//	SESSIONKEEPER_REQUEST_TIMEOUT, SESSIONKEEPER_LOG_LEVEL
package config
