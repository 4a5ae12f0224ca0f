package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is honored first (non-fatal if missing), so local
// deployments can keep credentials out of the shell.
//
// Supported variables:
//
//	ADDRESS                  HTTP bind address (e.g., ":8080")
//	DATABASE_DSN             PostgreSQL DSN
//	SECRET_KEY               JWT HMAC secret
//	TOKEN_VALIDITY_MINUTES   user token validity, minutes (0 = no expiry)
//	PIPELINE_TOKEN           shared secret for pipeline callbacks
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	LLM_BASE_URL, LLM_API_KEY, LLM_MODEL
//	MAX_UPLOAD_BYTES         upload size cap, bytes
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString("ADDRESS", &config.EndpointAddr)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setString("PIPELINE_TOKEN", &config.PipelineToken)
	setString("S3_ACCESS_KEY", &config.S3AccessKey)
	setString("S3_SECRET_KEY", &config.S3SecretKey)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("LLM_BASE_URL", &config.LLMBaseURL)
	setString("LLM_API_KEY", &config.LLMAPIKey)
	setString("LLM_MODEL", &config.LLMModel)

	if v, ok := os.LookupEnv("TOKEN_VALIDITY_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}

	if v, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}
}
