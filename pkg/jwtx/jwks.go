package jwtx

import (
	"crypto/ed25519"
	"encoding/base64"
)

// JWK is a JSON Web Key as published at the JWKS endpoint. Only the fields
// for Ed25519 (OKP) keys are carried; that is the only algorithm the
// service signs with.
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

// JWKS is the document served at /.well-known/jwks.json.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK builds a public JWK for an Ed25519 verification key.
func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Kid: kid,
		Use: use,
		Alg: alg,
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}
