package clinic

import (
	"context"
	"fmt"
)

type Patient struct {
	ID          int64  `json:"id"`
	Fullname    string `json:"fullname"`
	Gender      int    `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// PatientByUserID resolves the patient record behind an authenticated user.
func (c *Client) PatientByUserID(ctx context.Context, userID int64) (Patient, error) {
	var patient Patient
	if err := c.get(ctx, fmt.Sprintf("/patients/user/%d", userID), &patient); err != nil {
		return Patient{}, err
	}
	return patient, nil
}
