// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewCreatedEvent is published after a review is stored. It carries
// enough for downstream consumers (notifications, product score
// aggregation) without querying the primary database.
type ReviewCreatedEvent struct {
	ReviewID  uint64 `json:"review_id"`
	ProductID uint64 `json:"product_id"`
	AuthorID  uint64 `json:"author_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
