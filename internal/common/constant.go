// Package common contains shared constants and sentinel errors used across
// PrayLink components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultCurrency is the only currency tithes are collected in.
const DefaultCurrency = "USD"
