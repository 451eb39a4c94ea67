package models

import "time"

// Review is a rating left by a user with a confirmed booking of the tour.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	UserName  string    `bson:"user_name" json:"user_name"` // denormalized at creation
	TourID    string    `bson:"tour_id" json:"tour_id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewView struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) View() ReviewView {
	return ReviewView{ID: r.ID, Rating: r.Rating, Comment: r.Comment, UserName: r.UserName, CreatedAt: r.CreatedAt}
}
