package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/services"
)

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) Register(ctx context.Context, in services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAccounts) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *mockAccounts) Profile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockSchedules struct{ mock.Mock }

func (m *mockSchedules) OwnSchedule(ctx context.Context, userID string) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockSchedules) UpdateWorkingHours(ctx context.Context, userID string, wh models.WorkingHours) (models.WorkingHours, error) {
	args := m.Called(ctx, userID, wh)
	out, _ := args.Get(0).(models.WorkingHours)
	return out, args.Error(1)
}

func (m *mockSchedules) AddBlockedTime(ctx context.Context, userID string, req services.BlockRequest) (*models.BlockedInterval, error) {
	args := m.Called(ctx, userID, req)
	block, _ := args.Get(0).(*models.BlockedInterval)
	return block, args.Error(1)
}

func (m *mockSchedules) DeleteBlockedTime(ctx context.Context, userID, blockID string) error {
	return m.Called(ctx, userID, blockID).Error(0)
}

func (m *mockSchedules) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockSchedules) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockSchedules) SetStatus(ctx context.Context, doctorID, status string) error {
	return m.Called(ctx, doctorID, status).Error(0)
}

type mockSlots struct{ mock.Mock }

func (m *mockSlots) GenerateSlots(ctx context.Context, doctorID string, req services.SlotRequest) ([]models.Slot, error) {
	args := m.Called(ctx, doctorID, req)
	slots, _ := args.Get(0).([]models.Slot)
	return slots, args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Book(ctx context.Context, patientID string, req services.BookRequest) (*models.Appointment, error) {
	args := m.Called(ctx, patientID, req)
	apt, _ := args.Get(0).(*models.Appointment)
	return apt, args.Error(1)
}

func (m *mockBookings) ListForUser(ctx context.Context, userID, role string) ([]models.Appointment, error) {
	args := m.Called(ctx, userID, role)
	apts, _ := args.Get(0).([]models.Appointment)
	return apts, args.Error(1)
}

func (m *mockBookings) Cancel(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, userID, role, appointmentID)
	apt, _ := args.Get(0).(*models.Appointment)
	return apt, args.Error(1)
}

func (m *mockBookings) Complete(ctx context.Context, userID, role, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, userID, role, appointmentID)
	apt, _ := args.Get(0).(*models.Appointment)
	return apt, args.Error(1)
}
