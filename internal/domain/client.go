package domain

// Client types accepted by the admin form
const (
	ClientTypePaid  = "paid"
	ClientTypeTrial = "trial"
	ClientTypeDemo  = "demo"
)

// ClientTypes lists the allowed client types in form order
var ClientTypes = []string{ClientTypePaid, ClientTypeTrial, ClientTypeDemo}

// ValidClientType reports whether t is one of ClientTypes
func ValidClientType(t string) bool {
	for _, ct := range ClientTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Client Model
type Client struct {
	ID      uint    `gorm:"primaryKey" json:"id"`                                    // Primary key
	Name    string  `gorm:"size:80;uniqueIndex;not null" json:"name"`                // Unique client name
	Type    string  `gorm:"size:80;not null" json:"type"`                            // paid, trial or demo
	Balance float64 `gorm:"default:0" json:"balance"`                                // Account balance
	Ads     []Ad    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // One-to-many relationship with Ad
}
