package model

import "time"

// CustomerTier drives the monthly fee discount.
type CustomerTier string

const (
	TierBronze CustomerTier = "BRONZE"
	TierSilver CustomerTier = "SILVER"
	TierGold   CustomerTier = "GOLD"
)

type Customer struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Tier      CustomerTier `json:"tier"`
	CreatedAt time.Time    `json:"created_at"`
}
