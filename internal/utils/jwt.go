package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for reset codes
    "encoding/hex"  // hex encoding and decoding functions
    "errors"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrEmptySecret is returned when a token is signed or parsed without a
// secret.  config.Load makes this unreachable in a running server.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims is the payload of an access token: the account's username, email
// and usertype plus the registered iat/exp/sub fields.  sub is the store id
// of the account; the other fields are as of login and may go stale.
type Claims struct {
    Username string `json:"username"`
    Email    string `json:"email"`
    Usertype string `json:"usertype"`
    jwt.RegisteredClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
// Exp is the zero time when the token was issued without an exp claim.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time, zero if none
}

// NewAccessToken builds and signs an HS256 JWT for the account with
// userID.  iat is always set; exp only when ttlMin is positive.
func NewAccessToken(secret, userID, username, email, usertype string, ttlMin int) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, ErrEmptySecret
    }
    now := time.Now().UTC()
    claims := Claims{
        Username: username,
        Email:    email,
        Usertype: usertype,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:  userID,
            IssuedAt: jwt.NewNumericDate(now),
        },
    }
    var exp time.Time
    if ttlMin > 0 {
        exp = now.Add(time.Duration(ttlMin) * time.Minute)
        claims.ExpiresAt = jwt.NewNumericDate(exp)
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature of raw with secret and returns its
// claims.  Only HS256 is accepted; an expired token is an error.
func ParseAccessToken(secret, raw string) (*Claims, error) {
    if secret == "" {
        return nil, ErrEmptySecret
    }
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil {
        return nil, err
    }
    if !tok.Valid {
        return nil, jwt.ErrTokenSignatureInvalid
    }
    return claims, nil
}

// NewResetCode returns a random code for the password reset mail: 6 bytes
// of secure random data as 12 hex characters.
func NewResetCode() (string, error) {
    return randomHex(6)
}

// HashToken returns the SHA‑256 hash of a raw code as a hex string.  Only
// this hash is stored, so a leaked table cannot be replayed.
func HashToken(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
