package httpkit

import (
	"net/http"
	"strings"
)

// APIVersion is the path segment every module route lives under
const APIVersion = "v1"

// MountUnder mounts a subrouter at prefix with its own middleware
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// APIPrefix returns "/api/<version>" for version with or without a leading slash
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPIV1 scopes mount under /api/v1 behind mw, typically CommonStack
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix(APIVersion), mw, mount)
}
