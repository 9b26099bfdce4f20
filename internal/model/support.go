package model

import "time"

// Query is a support question or suggestion left by a signed-in user.
type Query struct {
    ID        string    `json:"id" bson:"-"`
    Username  string    `json:"username" bson:"username"`
    Email     string    `json:"email" bson:"email"`
    Ques      string    `json:"ques" bson:"ques"`
    Sug       string    `json:"sug" bson:"sug"`
    CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Transaction records a payment submitted from the checkout page.
type Transaction struct {
    ID            string    `json:"id" bson:"-"`
    Accountholder string    `json:"accountholder" bson:"accountholder"`
    Phone         string    `json:"phone" bson:"phone"`
    Accountnumber string    `json:"accountnumber" bson:"accountnumber"`
    IFSC          string    `json:"ifsc" bson:"ifsc"`
    Amount        float64   `json:"amount" bson:"amount"`
    Pincode       string    `json:"pincode" bson:"pincode"`
    Address       string    `json:"address" bson:"address"`
    CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
