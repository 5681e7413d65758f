package redis

import (
	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/useradmin/internal/config"
)

// Dial opens the redis connection pool. An empty address means the token
// cache is disabled; callers get a nil client back.
func Dial(cfg *config.RedisConfig) (radix.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	return radix.NewPool("tcp", cfg.Addr, 10)
}
