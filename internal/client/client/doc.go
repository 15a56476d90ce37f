// Package client implements the gRPC client used by the PrayLink CLI. It
// keeps the access and refresh tokens, attaches the access token to every
// call and transparently refreshes it once when the server reports expiry.
package client
