package clinic

import (
	"context"
	"fmt"
)

type Doctor struct {
	DoctorID          int64  `json:"doctorId"`
	DoctorCode        string `json:"doctorcode"`
	Fullname          string `json:"fullname"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	DateOfBirth       string `json:"dateOfBirth"`
	Gender            int    `json:"gender"`
	Address           string `json:"address"`
	AvatarURL         string `json:"avatar_url"`
	Department        string `json:"department"`
	Specialty         string `json:"specialty"`
	ExperienceYears   int    `json:"experienceYears"`
	CertificationName string `json:"certificationName"`
	IssuedBy          string `json:"issuedBy"`
	IssueDate         string `json:"issueDate"`
}

type Specialty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (c *Client) Doctors(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if err := c.get(ctx, "/doctors", &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (c *Client) Doctor(ctx context.Context, doctorID int64) (Doctor, error) {
	var doctor Doctor
	if err := c.get(ctx, fmt.Sprintf("/doctors/%d", doctorID), &doctor); err != nil {
		return Doctor{}, err
	}
	return doctor, nil
}

func (c *Client) Specialties(ctx context.Context) ([]Specialty, error) {
	var specialties []Specialty
	if err := c.get(ctx, "/specialties", &specialties); err != nil {
		return nil, err
	}
	return specialties, nil
}

func (c *Client) DoctorsBySpecialty(ctx context.Context, specialtyID int64) ([]Doctor, error) {
	var doctors []Doctor
	if err := c.get(ctx, fmt.Sprintf("/doctors/specialty/%d", specialtyID), &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}
