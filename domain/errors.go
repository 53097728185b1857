package domain

import "errors"

// Not-found conditions are distinct from "no recommendations": an unknown
// identifier is an error, an empty candidate pool is a valid empty result.
var (
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrRecommendationNotFound = errors.New("no stored recommendations for customer")
)
