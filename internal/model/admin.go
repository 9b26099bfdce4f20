package model

import "time"

// AdminCredential is one row of the `admins` table / collection.  Holding
// any record whose hash verifies against the submitted password is enough
// to pass admin login; there is no admin username.
type AdminCredential struct {
    ID           string    `bson:"-"`
    PasswordHash string    `bson:"password"`
    CreatedAt    time.Time `bson:"createdAt"`
}
