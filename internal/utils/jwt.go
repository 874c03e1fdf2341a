package utils // package utils provides helper functions for session tokens and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for stored token keys
    "encoding/hex"  // hex encoding and decoding functions
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for signed session tokens
)

// ErrInvalidToken is returned by ParseSignedSession for any token that is
// malformed, signed with another key, or expired.
var ErrInvalidToken = errors.New("invalid session token")

// SignedSession is the decoded form of a signed session token.  ID is the
// unique token id (jti) used for revocation.
type SignedSession struct {
    UserID uint64
    ID     string
    Exp    time.Time
}

// NewOpaqueToken returns a fresh 256-bit random token, hex encoded.  The
// value carries no user data and cannot be derived from it.
func NewOpaqueToken() (string, error) {
    return randomHex(32)
}

// HashToken returns the SHA-256 hash of a raw token as a hex string.
// Stores key sessions by this hash so a leaked key space does not expose
// usable tokens.
func HashToken(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// NewSignedSession builds and signs an HS256 JWT for a user.  The token
// carries the subject (sub), a random token id (jti), issued at (iat) and
// expiration (exp).
func NewSignedSession(secret []byte, userID uint64, ttl time.Duration) (string, SignedSession, error) {
    jti, err := randomHex(16)
    if err != nil {
        return "", SignedSession{}, err
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.RegisteredClaims{
        Subject:   strconv.FormatUint(userID, 10),
        ID:        jti,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(exp),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
    if err != nil {
        return "", SignedSession{}, err
    }
    return signed, SignedSession{UserID: userID, ID: jti, Exp: exp}, nil
}

// ParseSignedSession verifies the signature and expiry of a token produced
// by NewSignedSession.  Only HS256 is accepted.
func ParseSignedSession(secret []byte, raw string) (SignedSession, error) {
    var claims jwt.RegisteredClaims
    _, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
        return secret, nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil {
        return SignedSession{}, ErrInvalidToken
    }
    uid, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil || uid == 0 || claims.ID == "" {
        return SignedSession{}, ErrInvalidToken
    }
    return SignedSession{UserID: uid, ID: claims.ID, Exp: claims.ExpiresAt.Time}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
