package listing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"farmassist/internal/domain"
)

type MockManureStore struct {
	mock.Mock
}

func (m *MockManureStore) Create(ctx context.Context, d *domain.Manure) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 101
	}
	return args.Error(0)
}

func (m *MockManureStore) GetByID(ctx context.Context, id int64) (*domain.Manure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manure), args.Error(1)
}

func (m *MockManureStore) List(ctx context.Context) ([]domain.Manure, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Manure), args.Error(1)
}

func (m *MockManureStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTractorStore struct {
	mock.Mock
}

func (m *MockTractorStore) Create(ctx context.Context, d *domain.Tractor) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 201
	}
	return args.Error(0)
}

func (m *MockTractorStore) GetByID(ctx context.Context, id int64) (*domain.Tractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tractor), args.Error(1)
}

func (m *MockTractorStore) GetByRegistration(ctx context.Context, registration string) (*domain.Tractor, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tractor), args.Error(1)
}

func (m *MockTractorStore) List(ctx context.Context) ([]domain.Tractor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tractor), args.Error(1)
}

func (m *MockTractorStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNurseryCropStore struct {
	mock.Mock
}

func (m *MockNurseryCropStore) Create(ctx context.Context, d *domain.NurseryCrop) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 301
	}
	return args.Error(0)
}

func (m *MockNurseryCropStore) GetByID(ctx context.Context, id int64) (*domain.NurseryCrop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NurseryCrop), args.Error(1)
}

func (m *MockNurseryCropStore) List(ctx context.Context) ([]domain.NurseryCrop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.NurseryCrop), args.Error(1)
}

func (m *MockNurseryCropStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingArchiver struct {
	mock.Mock
}

func (m *MockBookingArchiver) SnapshotItem(ctx context.Context, itemType domain.ItemType, itemID int64, snapshot []byte) error {
	args := m.Called(ctx, itemType, itemID, snapshot)
	return args.Error(0)
}

func newTestService() (*Service, *MockManureStore, *MockTractorStore, *MockNurseryCropStore, *MockBookingArchiver) {
	manures := new(MockManureStore)
	tractors := new(MockTractorStore)
	crops := new(MockNurseryCropStore)
	archiver := new(MockBookingArchiver)
	return NewService(manures, tractors, crops, archiver), manures, tractors, crops, archiver
}

func TestService_DeleteManure_SnapshotsBeforeDelete(t *testing.T) {
	svc, manures, _, _, archiver := newTestService()

	m := &domain.Manure{ID: 101, ManureType: "Cow Dung", Quantity: 50, CostPerKg: 5, Address: "Plot 1", PostedBy: 2}
	manures.On("GetByID", mock.Anything, int64(101)).Return(m, nil)

	want, _ := json.Marshal(m)
	archiver.On("SnapshotItem", mock.Anything, domain.ItemManure, int64(101), want).Return(nil)
	manures.On("Delete", mock.Anything, int64(101)).Return(nil)

	err := svc.DeleteManure(context.Background(), 2, 101)

	assert.NoError(t, err)
	archiver.AssertExpectations(t)
	manures.AssertExpectations(t)
}

func TestService_DeleteManure_Forbidden(t *testing.T) {
	svc, manures, _, _, archiver := newTestService()

	m := &domain.Manure{ID: 101, PostedBy: 2}
	manures.On("GetByID", mock.Anything, int64(101)).Return(m, nil)

	err := svc.DeleteManure(context.Background(), 3, 101)

	assert.ErrorIs(t, err, ErrForbidden)
	archiver.AssertNotCalled(t, "SnapshotItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	manures.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_DeleteManure_NotFound(t *testing.T) {
	svc, manures, _, _, _ := newTestService()

	manures.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteManure(context.Background(), 2, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateTractor_DuplicateRegistration(t *testing.T) {
	svc, _, tractors, _, _ := newTestService()

	existing := &domain.Tractor{ID: 201, RegistrationNumber: "AP09TX1200"}
	tractors.On("GetByRegistration", mock.Anything, "AP09TX1200").Return(existing, nil)

	_, err := svc.CreateTractor(context.Background(), 2, CreateTractorRequest{
		Brand:              "Mahindra",
		ModelNumber:        "575",
		RegistrationNumber: "AP09TX1200",
		EngineCapacity:     45,
		FuelType:           "Diesel",
	})

	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	tractors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateTractor_RejectsUnknownAttachment(t *testing.T) {
	svc, _, tractors, _, _ := newTestService()

	tractors.On("GetByRegistration", mock.Anything, "AP09TX1201").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateTractor(context.Background(), 2, CreateTractorRequest{
		Brand:              "Swaraj",
		ModelNumber:        "744",
		RegistrationNumber: "AP09TX1201",
		EngineCapacity:     48,
		FuelType:           "Diesel",
		Attachments:        []string{"Plough", "Jackhammer"},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_DeleteTractor_SnapshotsBeforeDelete(t *testing.T) {
	svc, _, tractors, _, archiver := newTestService()

	tr := &domain.Tractor{ID: 201, OwnerID: 2, Brand: "Mahindra", RegistrationNumber: "AP09TX1200", Available: true}
	tractors.On("GetByID", mock.Anything, int64(201)).Return(tr, nil)

	want, _ := json.Marshal(tr)
	archiver.On("SnapshotItem", mock.Anything, domain.ItemTractor, int64(201), want).Return(nil)
	tractors.On("Delete", mock.Anything, int64(201)).Return(nil)

	err := svc.DeleteTractor(context.Background(), 2, 201)

	assert.NoError(t, err)
	archiver.AssertExpectations(t)
}

func TestService_DeleteNurseryCrop_OwnerOnly(t *testing.T) {
	svc, _, _, crops, archiver := newTestService()

	c := &domain.NurseryCrop{ID: 301, Name: "Tomato Seedlings", PostedBy: 4, QuantityAvailable: 200}
	crops.On("GetByID", mock.Anything, int64(301)).Return(c, nil)

	err := svc.DeleteNurseryCrop(context.Background(), 5, 301)

	assert.ErrorIs(t, err, ErrForbidden)
	archiver.AssertNotCalled(t, "SnapshotItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
