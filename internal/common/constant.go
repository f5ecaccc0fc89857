package common

import "time"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sessionId"

// DefaultSessionTTL is the fixed session lifetime counted from issuance.
const DefaultSessionTTL = 30 * 24 * time.Hour
