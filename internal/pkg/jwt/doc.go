// Package jwt issues and verifies the service's HS256 access and refresh
// tokens. It carries a typed Claims struct, a symmetric signer configured
// from the app config, and context helpers for the authenticated principal.
package jwt
