package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// NotificationService sends appointment SMS through Textbelt. Sending runs
// in its own goroutine and never affects the caller.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewNotificationService(apiKey string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		apiKey:   apiKey,
		endpoint: textbeltURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (s *NotificationService) AppointmentBooked(patient *models.User, apt *models.Appointment) {
	s.notify(patient, fmt.Sprintf(
		"Appointment confirmed with %s on %s at %s.",
		apt.DoctorName, apt.Date.Format("Mon, Jan 2"), apt.Time,
	))
}

func (s *NotificationService) AppointmentCancelled(patient *models.User, apt *models.Appointment) {
	s.notify(patient, fmt.Sprintf(
		"Your appointment with %s on %s at %s has been cancelled.",
		apt.DoctorName, apt.Date.Format("Mon, Jan 2"), apt.Time,
	))
}

func (s *NotificationService) notify(patient *models.User, body string) {
	if patient.Phone == "" {
		s.logger.Debug("SMS not sent: patient has no phone number", zap.String("userID", patient.ID.Hex()))
		return
	}
	if s.apiKey == "" {
		s.logger.Debug("SMS not sent: TEXTBELT_API_KEY is not set")
		return
	}
	go s.send(patient.Phone, body)
}

func (s *NotificationService) send(phone, message string) {
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		s.logger.Error("failed to encode SMS request", zap.Error(err))
		return
	}

	resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(postBody))
	if err != nil {
		s.logger.Warn("failed to send Textbelt request", zap.String("phone", phone), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.logger.Warn("unreadable Textbelt response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return
	}
	if !result.Success {
		s.logger.Warn("Textbelt rejected SMS", zap.String("phone", phone), zap.String("reason", result.Error))
		return
	}
	s.logger.Info("SMS sent", zap.String("phone", phone))
}
