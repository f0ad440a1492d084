// Package config loads typed configuration from environment variables.
//
// Load first reads dotenv files (".env" by default, via joho/godotenv) into
// the process environment without overriding variables that are already set,
// then parses the target struct with caarlos0/env:
//
//	type Config struct {
//		StorageDir string `env:"STORAGE_DIR" envDefault:"./uploads"`
//		MaxSize    int64  `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// Nested structs can carry their own prefix with the envPrefix tag. Tests can
// bypass the process environment entirely with WithEnvironment.
package config
