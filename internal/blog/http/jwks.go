package http

import (
	"net/http"

	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
)

// JWKSHandler serves the public signing keys so external verifiers can
// validate access tokens offline.
//
//	@Summary	Public signing keys
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	jwtx.JWKS
//	@Router		/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, keys.PublicJWKS())
	})
}
