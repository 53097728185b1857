package domain

import (
	"time"
)

// CREATE TABLE public.customer_recommendations (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     customer_id         TEXT UNIQUE NOT NULL,
//     recommendation1     TEXT,
//     recommendation2     TEXT,
//     recommendation3     TEXT,
//     recommendation4     TEXT,
//     recommendation5     TEXT,
//     generated_at        TIMESTAMPTZ
// );

// RecommendationSlots is the fixed row width of a stored recommendation set.
const RecommendationSlots = 5

// CustomerRecommendation is the persisted, fixed-width result of a batch run
// for one customer. A NULL slot is the explicit "none" marker.
type CustomerRecommendation struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID      string    `gorm:"column:customer_id;uniqueIndex;not null" json:"customer_id"`
	Recommendation1 *string   `gorm:"column:recommendation1;type:text" json:"recommendation1"`
	Recommendation2 *string   `gorm:"column:recommendation2;type:text" json:"recommendation2"`
	Recommendation3 *string   `gorm:"column:recommendation3;type:text" json:"recommendation3"`
	Recommendation4 *string   `gorm:"column:recommendation4;type:text" json:"recommendation4"`
	Recommendation5 *string   `gorm:"column:recommendation5;type:text" json:"recommendation5"`
	GeneratedAt     time.Time `gorm:"column:generated_at" json:"generated_at"`
}

func (CustomerRecommendation) TableName() string {
	return "customer_recommendations"
}

// Slots returns the five slot pointers in order.
func (r *CustomerRecommendation) Slots() [RecommendationSlots]*string {
	return [RecommendationSlots]*string{
		r.Recommendation1,
		r.Recommendation2,
		r.Recommendation3,
		r.Recommendation4,
		r.Recommendation5,
	}
}

// RecommendationItem is one row of a served recommendation list.
type RecommendationItem struct {
	ProductID     string  `json:"product_id"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Rating        float64 `json:"rating"`
	Score         float64 `json:"score"`
	FeedbackToken string  `json:"feedback_token,omitempty"`
}

// RecommendationResult is the full answer for one customer.
type RecommendationResult struct {
	CustomerID  string               `json:"customer_id"`
	Preferences PreferenceSummary    `json:"customer_preferences"`
	Items       []RecommendationItem `json:"recommendations"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// Explanation is the narration attached to a recommendation list. When the
// narration service is unavailable the ranking is still served and Available
// is false.
type Explanation struct {
	CustomerID string `json:"customer_id"`
	Text       string `json:"explanation"`
	Available  bool   `json:"explanation_available"`
}
