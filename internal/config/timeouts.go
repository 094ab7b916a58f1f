package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunables for the post-create bucket availability poll.
type Timeouts struct {
	BucketWaitAttempts     int           // Retries after the first HeadBucket
	BucketWaitInitialDelay time.Duration // First backoff delay
	BucketWaitMaxDelay     time.Duration // Backoff ceiling
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - S3DEPLOY_BUCKET_WAIT_ATTEMPTS (default: 8)
//   - S3DEPLOY_BUCKET_WAIT_INITIAL_DELAY (default: 1s)
//   - S3DEPLOY_BUCKET_WAIT_MAX_DELAY (default: 10s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		BucketWaitAttempts:     parseInt("S3DEPLOY_BUCKET_WAIT_ATTEMPTS", 8),
		BucketWaitInitialDelay: parseDuration("S3DEPLOY_BUCKET_WAIT_INITIAL_DELAY", 1*time.Second),
		BucketWaitMaxDelay:     parseDuration("S3DEPLOY_BUCKET_WAIT_MAX_DELAY", 10*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
