package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the inventory exchange.
const (
	RKSweetPurchased  = "sweet.purchased"
	RKSweetRestocked  = "sweet.restocked"
	RKSweetOutOfStock = "sweet.out_of_stock"
)

type SweetPurchased struct {
	EventID   string `json:"event_id"`
	SweetID   uint   `json:"sweet_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
	BuyerID   uint   `json:"buyer_id"`
}

type SweetRestocked struct {
	EventID  string `json:"event_id"`
	SweetID  uint   `json:"sweet_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    int    `json:"total"`
	AdminID  uint   `json:"admin_id"`
}

type SweetOutOfStock struct {
	EventID string `json:"event_id"`
	SweetID uint   `json:"sweet_id"`
	Name    string `json:"name"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
