package tour

import (
	"errors"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"

	"github.com/google/uuid"
)

// AddReview requires a confirmed booking of the tour and allows one review per user.
func (s *DefaultTourService) AddReview(userID, tourID string, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.get(tourID); err != nil {
		return nil, err
	}
	booked, err := s.Bookings.HasConfirmed(userID, tourID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrNotBooked
	}
	exists, err := s.Reviews.Exists(userID, tourID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	r := &models.Review{
		ID:      uuid.New().String(),
		UserID:  userID,
		TourID:  tourID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if u, err := s.Users.GetByID(userID); err == nil {
		r.UserName = u.Name
	}
	if err := s.Reviews.Create(r); err != nil {
		// lost a race with a concurrent review by the same user
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return r, nil
}
