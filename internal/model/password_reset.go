package model

import "time"

// PasswordReset models an entry in the `password_resets` table.  The
// plain reset code is mailed to the user and never stored; only its
// SHA-256 hash is.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the code.
//  Email     – email the code was sent to.
//  TokenHash – SHA-256 hex digest of the code.
//  ExpiresAt – expiration timestamp.
//  UsedAt    – when the code was consumed or invalidated (nil while active).
//  CreatedAt – timestamp of creation.
type PasswordReset struct {
    ID        string     `bson:"-"`
    UserID    string     `bson:"userId"`
    Email     string     `bson:"email"`
    TokenHash string     `bson:"tokenHash"`
    ExpiresAt time.Time  `bson:"expiresAt"`
    UsedAt    *time.Time `bson:"usedAt,omitempty"`
    CreatedAt time.Time  `bson:"createdAt"`
}
