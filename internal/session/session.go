// Package session builds the gin-contrib/sessions store used by the server.
package session

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"

	"github.com/yukikurage/qa-forum/internal/config"
)

const (
	redisPoolSize = 10
	maxAge        = 86400 * 14
)

// NewStore returns a redis-backed store when a redis host is configured and a
// signed cookie store otherwise.
func NewStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			redisPoolSize,
			"tcp",
			addr,
			"", // username
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		slog.Info("using redis session store", "addr", addr)
		store = rs
	} else {
		slog.Info("using cookie session store")
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(Options(cfg.IsProduction()))
	return store, nil
}

// Options are the cookie attributes shared by both stores.
func Options(secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
