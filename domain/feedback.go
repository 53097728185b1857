package domain

import "time"

// Feedback is a postback for one served recommendation, identified by its
// feedback token.
type Feedback struct {
	Token   string  `json:"feedback_token" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment string  `json:"comment"`
}

// FeedbackAck echoes what the feedback was resolved to.
type FeedbackAck struct {
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Sentiment  float64   `json:"sentiment"`
	ReceivedAt time.Time `json:"received_at"`
}
