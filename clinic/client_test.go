package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/md-rashed-zaman/clinicbook/schedule"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, WithAccessToken("test-token"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestSchedulesForDoctor_DecodesWireShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doctors/7/schedules" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"doctorId":7,"date":"2024-06-01","shift":"morning","start_time":"08:00","end_time":"11:30","location":"Room 204","maxPatients":5,"bookedPatients":2},
			{"id":2,"doctorId":7,"date":"2024-06-01","shift":"afternoon","start_time":"13:00","end_time":"17:00","location":"Room 204","maxPatients":4,"bookedPatients":4,"status":"closed"}
		]`))
	}))

	entries, err := client.SchedulesForDoctor(context.Background(), 7)
	if err != nil {
		t.Fatalf("schedules: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Status != schedule.StatusActive {
		t.Fatalf("entry without status label must default to active, got %v", entries[0].Status)
	}
	if entries[0].StartTime != "08:00" || entries[0].Location != "Room 204" {
		t.Fatalf("unexpected entry decode: %+v", entries[0])
	}
	if entries[1].Status != schedule.StatusClosed {
		t.Fatalf("expected closed status, got %v", entries[1].Status)
	}
}

func TestCreateAppointment_SendsIdempotencyKeyAndBody(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/appointments" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":99,"patientId":5,"doctorId":7,"doctorScheduleId":1,"status":"pending","appointmentDate":"2024-06-01"}`))
	}))

	appt, err := client.CreateAppointment(context.Background(), CreateAppointmentRequest{
		PatientID:        5,
		DoctorID:         7,
		DoctorScheduleID: 1,
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if gotKey == "" {
		t.Fatal("expected an Idempotency-Key header")
	}
	if gotBody["patientId"] != float64(5) || gotBody["doctorScheduleId"] != float64(1) {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	if reqAt, _ := gotBody["requestedAt"].(string); reqAt == "" {
		t.Fatal("expected requestedAt to be stamped")
	}
	if appt.ID != 99 || !appt.Cancelable() {
		t.Fatalf("unexpected appointment: %+v", appt)
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"schedule is fully booked"}`))
	}))

	_, err := client.CreateAppointment(context.Background(), CreateAppointmentRequest{PatientID: 5, DoctorID: 7, DoctorScheduleID: 1})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if IsTransport(err) {
		t.Fatal("a backend response must not look like a transport failure")
	}
}

func TestDoctor_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "doctor not found", http.StatusNotFound)
	}))

	_, err := client.Doctor(context.Background(), 12345)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestIsTransport_NetworkFailure(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.Doctors(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestCancelAppointment_SendsStatusUpdate(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appointments/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":99,"status":"canceled","cancelReason":"schedule conflict"}`))
	}))

	appt, err := client.CancelAppointment(context.Background(), CancelAppointmentRequest{
		AppointmentID:   99,
		Reason:          "schedule conflict",
		UpdatedByUserID: 42,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if gotBody["status"] != "canceled" || gotBody["updatedByUserId"] != float64(42) {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	if appt.Cancelable() {
		t.Fatal("canceled appointment must not be cancelable")
	}
}

func TestLogin_InstallsToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"fresh-token","user":{"id":42,"fullname":"Nguyen Van A","role":"patient"}}`))
	}))

	sess, err := client.Login(context.Background(), "0900000001", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.UserID != 42 || sess.Role != "patient" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if client.accessToken() != "fresh-token" {
		t.Fatal("login must install the returned token")
	}
}
