package model

import "time"

// Product types served by the dedicated catalogue endpoints.
const (
    ProductTypeMedicine       = "medicine"
    ProductTypeHealthcare     = "healthcare"
    ProductTypePharmaceutical = "pharmaceutical"
)

// Product is a catalogue entry.  Productname is unique.  Price is kept as
// the display string supplied by the client.
type Product struct {
    ID          string    `json:"id" bson:"-"`
    Productname string    `json:"productname" bson:"productname"`
    Img         string    `json:"img" bson:"img"`
    Price       string    `json:"price" bson:"price"`
    Type        string    `json:"type" bson:"type"`
    Status      string    `json:"status" bson:"status"`
    CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
