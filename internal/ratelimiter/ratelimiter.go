package ratelimiter

import "time"

// Limiter decides whether a request from key (the client address) may proceed.
// When it may not, the duration says how long the client should wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
