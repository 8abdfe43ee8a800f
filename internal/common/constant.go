package common

// AuthorizationHeaderName carries the bearer credential on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme, also echoed back in
// the WWW-Authenticate challenge.
const BearerScheme = "Bearer"

// TokenType is reported to clients next to an issued access token.
const TokenType = "bearer"
