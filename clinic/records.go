package clinic

import (
	"context"
	"fmt"
)

type MedicalRecord struct {
	ID         int64  `json:"id"`
	PatientID  int64  `json:"patientId"`
	DoctorName string `json:"doctorName"`
	VisitDate  string `json:"visitDate"`
	Diagnosis  string `json:"diagnosis"`
	Notes      string `json:"notes"`
}

type PrescriptionItem struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type Prescription struct {
	ID       int64              `json:"id"`
	RecordID int64              `json:"recordId"`
	Items    []PrescriptionItem `json:"items"`
}

func (c *Client) MedicalRecordsForPatient(ctx context.Context, patientID int64) ([]MedicalRecord, error) {
	var records []MedicalRecord
	if err := c.get(ctx, fmt.Sprintf("/medical-records/patient/%d", patientID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) PrescriptionForRecord(ctx context.Context, recordID int64) (Prescription, error) {
	var p Prescription
	if err := c.get(ctx, fmt.Sprintf("/prescriptions/record/%d", recordID), &p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}
