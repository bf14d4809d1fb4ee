package domain

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a star rating with an optional comment. UserName, UserEmail and
// BusinessName are snapshots taken when the review was written.
type Review struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	BusinessID   string    `json:"businessId"`
	BusinessName string    `json:"businessName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateReviewInput is what a client submits.
type CreateReviewInput struct {
	Rating     int    `json:"rating" validate:"required"`
	Comment    string `json:"comment" validate:"max=2000"`
	BusinessID string `json:"businessId" validate:"required,notblank"`
}

// NewReview is what the review repository persists.
type NewReview struct {
	Rating       int
	Comment      string
	UserID       string
	UserName     string
	UserEmail    string
	BusinessID   string
	BusinessName string
}

// ValidRating reports whether r is an integer star rating in [1, 5].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ReviewFilter selects reviews for one business or one author. BusinessID
// wins when both are set.
type ReviewFilter struct {
	BusinessID string
	UserID     string
}

// RatingSummary aggregates the reviews of one business.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
	// Distribution[i] counts the reviews with i+1 stars.
	Distribution [MaxRating]int `json:"distribution"`
}

// Summarize computes the summary of reviews. The average is the arithmetic
// mean, 0 for no reviews.
func Summarize(reviews []Review) RatingSummary {
	var s RatingSummary
	sum := 0
	for _, r := range reviews {
		if ValidRating(r.Rating) {
			s.Distribution[r.Rating-1]++
		}
		sum += r.Rating
	}
	s.ReviewCount = len(reviews)
	if s.ReviewCount > 0 {
		s.AverageRating = float64(sum) / float64(s.ReviewCount)
	}
	return s
}

// RoundRating rounds an average to one decimal place for display.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
