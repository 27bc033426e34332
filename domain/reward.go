package domain

import "time"

// Reward is a catalog entry users can redeem once they have earned enough
// lifetime points. Redeeming never deducts points; total_points only grows.
type Reward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PointCost   int       `json:"point_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// Redemption records a reward claimed by a user.
type Redemption struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RewardID   string    `json:"reward_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
