package modkit

import (
	"creditrisk/internal/platform/logger"
	phttp "creditrisk/internal/platform/net/http"
)

// Module is one feature slice of the API: a name and the routes it owns
type Module interface {
	MountRoutes(r phttp.Router)
	Name() string
}

// MountAll mounts mods on r in order
func MountAll(r phttp.Router, mods ...Module) {
	log := logger.Named("modkit")
	for _, m := range mods {
		m.MountRoutes(r)
		log.Debug().Str("module", m.Name()).Msg("module mounted")
	}
}
