package domain

// Ad Model
type Ad struct {
	ID        uint    `gorm:"primaryKey" json:"id"`            // Primary key
	Name      string  `gorm:"size:80" json:"name"`             // Campaign name
	ClientID  uint    `gorm:"not null;index" json:"client_id"` // Foreign key to Client
	Category  string  `gorm:"size:80;not null" json:"category"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Height    float64 `gorm:"default:0" json:"height"`
	Views     int64   `gorm:"not null;default:0" json:"views"`  // Incremented by proximity lookups
	Clicks    int64   `gorm:"not null;default:0" json:"clicks"` // Engagement counter
	Type      string  `gorm:"size:80" json:"type"`
	Data      []byte  `json:"data,omitempty"` // Opaque payload
}
