package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                         // Primary key
	Username string `gorm:"size:80;uniqueIndex;not null" json:"username"` // Unique username
	Password string `gorm:"size:80;not null" json:"-"`                    // Stored as salt|hash, never serialized
	APIKey   string `gorm:"size:80;uniqueIndex;not null" json:"api_key"`  // Bearer token for the public API
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`                // Admin routes require this flag
	Email    string `gorm:"size:80" json:"email"`                         // Optional contact email
}
