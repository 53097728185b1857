package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.customers (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     customer_id         TEXT UNIQUE NOT NULL,
//     age                 INTEGER,
//     gender              TEXT,
//     location            TEXT,
//     browsing_history    JSONB,
//     purchase_history    JSONB,
//     customer_segment    TEXT,
//     avg_order_value     NUMERIC,
//     holiday             TEXT,
//     season              TEXT,
//     created_at          TIMESTAMPTZ DEFAULT NOW()
// );

// Browsing/purchase history are JSON arrays of category tokens. They are
// parsed with a strict JSON decoder only; malformed content is treated as an
// empty history, never evaluated.

type Customer struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"-"`
	CustomerID      string         `gorm:"column:customer_id;uniqueIndex;not null" json:"customer_id"`
	Age             int            `gorm:"column:age" json:"age"`
	Gender          string         `gorm:"column:gender;type:text" json:"gender"`
	Location        string         `gorm:"column:location;type:text" json:"location"`
	BrowsingHistory datatypes.JSON `gorm:"column:browsing_history" json:"browsing_history"`
	PurchaseHistory datatypes.JSON `gorm:"column:purchase_history" json:"purchase_history"`
	CustomerSegment string         `gorm:"column:customer_segment;type:text" json:"customer_segment"`
	AvgOrderValue   float64        `gorm:"column:avg_order_value;type:numeric" json:"avg_order_value"`
	Holiday         string         `gorm:"column:holiday;type:text" json:"holiday"`
	Season          string         `gorm:"column:season;type:text" json:"season"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
