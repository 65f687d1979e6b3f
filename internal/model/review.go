package model

import "time"

// Review mirrors the 'reviews' table. AuthorID is set once at creation
// and never changes; only the author may update or delete the review.
type Review struct {
	ID          uint64    `json:"id"`          // reviews.id
	Title       string    `json:"title"`       // reviews.title
	Description string    `json:"description"` // reviews.description
	Rating      int       `json:"rating"`      // reviews.rating (1..5)
	ProductID   uint64    `json:"productId"`   // reviews.product_id
	AuthorID    uint64    `json:"authorId"`    // reviews.author_id
	CreatedAt   time.Time `json:"createdAt"`   // reviews.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // reviews.updated_at
}
