package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/models"
)

var testLogger = zap.NewNop()

type mockDoctorStore struct {
	mock.Mock
}

func (m *mockDoctorStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockDoctorStore) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	args := m.Called(ctx, userID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

func (m *mockDoctorStore) List(ctx context.Context, status string) ([]models.Doctor, error) {
	args := m.Called(ctx, status)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *mockDoctorStore) UpdateWorkingHours(ctx context.Context, id primitive.ObjectID, wh models.WorkingHours) error {
	return m.Called(ctx, id, wh).Error(0)
}

func (m *mockDoctorStore) AddBlockedTime(ctx context.Context, id primitive.ObjectID, block models.BlockedInterval) error {
	return m.Called(ctx, id, block).Error(0)
}

func (m *mockDoctorStore) RemoveBlockedTime(ctx context.Context, id, blockID primitive.ObjectID) error {
	return m.Called(ctx, id, blockID).Error(0)
}

func (m *mockDoctorStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockAppointmentStore struct {
	mock.Mock
}

func (m *mockAppointmentStore) FindActiveBookings(ctx context.Context, doctorID primitive.ObjectID, from, to time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, from, to)
	apts, _ := args.Get(0).([]models.Appointment)
	return apts, args.Error(1)
}

func (m *mockAppointmentStore) Create(ctx context.Context, apt *models.Appointment) error {
	return m.Called(ctx, apt).Error(0)
}

func (m *mockAppointmentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	apt, _ := args.Get(0).(*models.Appointment)
	return apt, args.Error(1)
}

func (m *mockAppointmentStore) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Appointment, error) {
	args := m.Called(ctx, patientID)
	apts, _ := args.Get(0).([]models.Appointment)
	return apts, args.Error(1)
}

func (m *mockAppointmentStore) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	apts, _ := args.Get(0).([]models.Appointment)
	return apts, args.Error(1)
}

func (m *mockAppointmentStore) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) AppointmentBooked(patient *models.User, apt *models.Appointment) {
	m.Called(patient, apt)
}

func (m *mockNotifier) AppointmentCancelled(patient *models.User, apt *models.Appointment) {
	m.Called(patient, apt)
}

type mockSlotChecker struct {
	mock.Mock
}

func (m *mockSlotChecker) IsSlotAvailable(ctx context.Context, doctorID primitive.ObjectID, day time.Time, minute int) (bool, error) {
	args := m.Called(ctx, doctorID, day, minute)
	return args.Bool(0), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateJWT(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

type mockProfileCreator struct {
	mock.Mock
}

func (m *mockProfileCreator) CreateProfile(ctx context.Context, user *models.User, specialization string) (*models.Doctor, error) {
	args := m.Called(ctx, user, specialization)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}
