// Package common contains shared constants and sentinel errors used across
// newscheck components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token inside the authorization header.
const BearerPrefix = "Bearer "
