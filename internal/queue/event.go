// Package queue defines message payloads exchanged over the message broker.
package queue

// TransactionQueue is the durable queue carrying TransactionRecordedEvent.
const TransactionQueue = "transaction.recorded"

// TransactionRecordedEvent is published after a payment transaction has been
// stored.  The account number is masked so downstream consumers never see
// the full value.
type TransactionRecordedEvent struct {
	TransactionID string  `json:"transaction_id"`
	Accountholder string  `json:"accountholder"`
	AccountMasked string  `json:"account"`
	Amount        float64 `json:"amount"`
	Pincode       string  `json:"pincode"`
	RecordedBy    string  `json:"recorded_by"`
	RecordedAt    string  `json:"recorded_at"`
}

// MaskAccount keeps only the last four characters of an account number.
func MaskAccount(n string) string {
	if len(n) <= 4 {
		return n
	}
	masked := make([]byte, len(n))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(n)-4:], n[len(n)-4:])
	return string(masked)
}
