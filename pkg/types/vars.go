package types

import (
	"time"
)

var (
	PROVFS_VERSION string
	GO_VERSION     string
	COMMIT_ID      string
	BUILD_TIME     string
)

const (
	// default value
	DEFAULT_LOG_MAX_AGE       = 72 * time.Hour
	DEFAULT_LOG_ROTATION_TIME = 1 * time.Hour
	DEFAULT_LEVEL             = "info"
)
