package store

import (
	"context"
	"strings"

	"github.com/safar/solestride/internal/models"
	"go.uber.org/zap"
)

func (s *Storefront) ProductReviews(productID string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// ReviewSummary averages the ratings of productID; no reviews averages to 0.
func (s *Storefront) ReviewSummary(productID string) models.ReviewSummary {
	return SummarizeReviews(s.ProductReviews(productID))
}

func SummarizeReviews(reviews []models.Review) models.ReviewSummary {
	if len(reviews) == 0 {
		return models.ReviewSummary{}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return models.ReviewSummary{
		Count:   len(reviews),
		Average: float64(sum) / float64(len(reviews)),
	}
}

// AddReview records a review. The product is not required to exist, so
// reviews of deleted products keep their history.
func (s *Storefront) AddReview(ctx context.Context, in models.ReviewInput) (models.Review, error) {
	if err := in.Validate(); err != nil {
		return models.Review{}, err
	}

	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		userName = models.AnonymousReviewer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review := models.Review{
		ID:        s.newID("rev"),
		ProductID: in.ProductID,
		UserName:  userName,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		Date:      s.now().UTC(),
	}

	reviews := append(append([]models.Review{}, s.reviews...), review)
	if err := s.save(ctx, blob{models.KeyReviews, reviews}); err != nil {
		return models.Review{}, err
	}
	s.reviews = reviews

	s.logger.Info("Review added",
		zap.String("review_id", review.ID),
		zap.String("product_id", review.ProductID),
		zap.Int("rating", review.Rating))
	return review, nil
}
