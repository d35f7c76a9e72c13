package memcache_fx

import (
	"go.uber.org/fx"

	mem "triplog/pkg/memcache"
)

var Module = fx.Provide(provideSessionTokens)

func provideSessionTokens() mem.SessionTokenStore {
	return mem.NewSessionTokens()
}
