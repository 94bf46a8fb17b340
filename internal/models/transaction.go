package models

import "time"

// Transaction is a locally synthesized transaction record, persisted in
// the local transaction log (separate from the vault record).
type Transaction struct {
	TxID      string    `json:"txId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackendTransaction is the lenient wire shape returned by the backend
// transactions endpoint. Identifier and status fields vary by source.
type BackendTransaction struct {
	TxID   string  `json:"txId"`
	ID     string  `json:"id"`
	Result string  `json:"result"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

// DisplayID returns the best available identifier for rendering.
func (t *BackendTransaction) DisplayID() string {
	if t.TxID != "" {
		return t.TxID
	}
	if t.ID != "" {
		return t.ID
	}
	return "tx-?"
}

// DisplayStatus returns the best available status for rendering.
func (t *BackendTransaction) DisplayStatus() string {
	if t.Result != "" {
		return t.Result
	}
	return t.Status
}

// Balance is the backend balance response. Usdt is optional; when the
// backend omits it the dashboard derives an estimate locally.
type Balance struct {
	Hbar *float64 `json:"hbar"`
	Usdt *float64 `json:"usdt"`
}

// ActivityItem is one entry from the backend activity feed.
type ActivityItem struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Token  string  `json:"token"`
}
