package utils

import "time"

// AuthCachePrefix is the prefix used for Redis session cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is refreshed on every cache hit.
const AuthCacheTTL = time.Hour

// StatsCacheTTL bounds how stale the database statistics may be.
const StatsCacheTTL = 30 * time.Second

// ResetCodeLength is the number of digits in a password-reset code.
const ResetCodeLength = 6
