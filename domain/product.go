package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id                          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id                  TEXT UNIQUE NOT NULL,
//     category                    TEXT,
//     subcategory                 TEXT,
//     price                       NUMERIC,
//     brand                       TEXT,
//     average_rating_similar      NUMERIC,
//     rating                      NUMERIC,
//     sentiment_score             NUMERIC,
//     holiday                     TEXT,
//     season                      TEXT,
//     geographical_location       TEXT,
//     similar_products            JSONB,
//     recommendation_probability  NUMERIC,
//     created_at                  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID                        uint64         `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID                 string         `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	Category                  string         `gorm:"column:category;type:text;index" json:"category"`
	Subcategory               string         `gorm:"column:subcategory;type:text" json:"subcategory"`
	Price                     float64        `gorm:"column:price;type:numeric" json:"price"`
	Brand                     string         `gorm:"column:brand;type:text" json:"brand"`
	AverageRatingSimilar      float64        `gorm:"column:average_rating_similar;type:numeric" json:"average_rating_similar"`
	Rating                    float64        `gorm:"column:rating;type:numeric" json:"rating"`
	SentimentScore            float64        `gorm:"column:sentiment_score;type:numeric" json:"sentiment_score"`
	Holiday                   string         `gorm:"column:holiday;type:text" json:"holiday"`
	Season                    string         `gorm:"column:season;type:text" json:"season"`
	GeographicalLocation      string         `gorm:"column:geographical_location;type:text" json:"geographical_location"`
	SimilarProducts           datatypes.JSON `gorm:"column:similar_products" json:"similar_products"`
	RecommendationProbability float64        `gorm:"column:recommendation_probability;type:numeric" json:"recommendation_probability"`
	CreatedAt                 time.Time      `gorm:"column:created_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
