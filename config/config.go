package config

import (
	"fmt"
	"os"
)

// Config holds everything the server needs from the environment. It is
// built once in main and passed down explicitly; no package keeps global
// connection state.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	RedisAddr string

	JWTSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadDir string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return v, nil
}

// Load reads the configuration from the environment. The JWT secret and the
// Cloudinary credentials have no defaults on purpose: the server refuses to
// start without them.
func Load() (Config, error) {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		MongoDB:   getEnv("MONGO_DB", "shop"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	var err error
	if cfg.MongoURI, err = requireEnv("MONGO_URI"); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return Config{}, err
	}
	if cfg.CloudinaryCloudName, err = requireEnv("CLOUDINARY_CLOUD_NAME"); err != nil {
		return Config{}, err
	}
	if cfg.CloudinaryAPIKey, err = requireEnv("CLOUDINARY_API_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.CloudinaryAPISecret, err = requireEnv("CLOUDINARY_API_SECRET"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
