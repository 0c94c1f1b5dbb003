package clinic

import "context"

type Feedback struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patientId"`
	PatientName string `json:"patientName"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
	CreatedAt   string `json:"createdAt"`
}

type CreateFeedbackRequest struct {
	PatientID int64  `json:"patientId"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
}

func (c *Client) Feedbacks(ctx context.Context) ([]Feedback, error) {
	var feedbacks []Feedback
	if err := c.get(ctx, "/feedbacks", &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (c *Client) CreateFeedback(ctx context.Context, req CreateFeedbackRequest) (Feedback, error) {
	var fb Feedback
	if err := c.post(ctx, "/feedbacks", req, &fb, nil); err != nil {
		return Feedback{}, err
	}
	return fb, nil
}
