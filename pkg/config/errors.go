package config

import "errors"

var (
	// ErrParsingConfig wraps caarlos0/env failures (missing required vars, bad values).
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when a dotenv file exists but cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)
