package ports

// Claims are the identity fields embedded in a signed token.
type Claims struct {
	UserID int64
	Email  string
}

// TokenProvider signs and validates bearer tokens. Verify is pure: it never
// consults the record store, and reports failures as domain.ErrTokenMalformed,
// domain.ErrTokenBadSignature, or domain.ErrTokenExpired.
type TokenProvider interface {
	Issue(claims Claims) (string, error)
	Verify(raw string) (Claims, error)
}
