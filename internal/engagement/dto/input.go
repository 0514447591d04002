package dto

type AddReviewInput struct {
	ProductID string
	UserID    string
	Rating    int
	Comment   string
}
