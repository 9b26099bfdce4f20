package model

import (
    "encoding/json"
    "time"
)

// User represents one registered account.  The same struct is stored in
// the MySQL `users` table, the Mongo `users` collection and the in-memory
// store.  Password holds the bcrypt hash and is tagged json:"-" so no
// response can ever carry it.
//
// Cart, Transaction and Products are loosely typed client data kept as raw
// JSON; the service never interprets them.
type User struct {
    ID          string          `json:"id" bson:"-"`
    Firstname   string          `json:"firstname" bson:"firstname"`
    Lastname    string          `json:"lastname" bson:"lastname"`
    Username    string          `json:"username" bson:"username"`
    Email       string          `json:"email" bson:"email"`
    Password    string          `json:"-" bson:"password"`
    Usertype    string          `json:"usertype" bson:"usertype"`
    ProfilePic  string          `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
    Status      string          `json:"status,omitempty" bson:"status,omitempty"`
    Pincode     string          `json:"pincode" bson:"pincode"`
    Phone       string          `json:"phone" bson:"phone"`
    Address     string          `json:"address" bson:"address"`
    Cart        json.RawMessage `json:"cart,omitempty" bson:"cart,omitempty"`
    Transaction json.RawMessage `json:"transaction,omitempty" bson:"transaction,omitempty"`
    Products    json.RawMessage `json:"products,omitempty" bson:"products,omitempty"`
    CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
    UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// An empty Password keeps the current hash.
type ProfileUpdate struct {
    Username string
    Email    string
    Password string // already hashed when non-empty
    Phone    string
    Address  string
}
