package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories use. It is the full
// universal client so single-node, cluster and miniredis all fit.
type Client interface {
	redis.UniversalClient
}
