package models

import (
	"strings"
	"time"
)

// Product is one normalized item discovered on the storefront.
type Product struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Price string `json:"price"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// Valid reports whether the product carries the minimum fields worth
// surfacing to a user. Brand, image and URL may be empty.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Price) != ""
}

// Message is one turn of a stored conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Gender preference values as stored.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Preferences is the slice of a user profile the advisor cares about.
type Preferences struct {
	UserID string `json:"user_id"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
	Height string `json:"height"`
}

// ImageAnalysis is the per-image outcome of a multi-image advice request.
type ImageAnalysis struct {
	Advice   string    `json:"advice"`
	Products []Product `json:"products"`
}
