package upi

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"finch/internal/models"
	"finch/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(pr *models.PaymentRequest) error {
	return m.Called(pr).Error(0)
}

func (m *MockRequestRepo) GetByCode(code string) (*models.PaymentRequest, error) {
	args := m.Called(code)
	if pr := args.Get(0); pr != nil {
		return pr.(*models.PaymentRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepo) GetByUserID(userID uint) ([]models.PaymentRequest, error) {
	args := m.Called(userID)
	if prs := args.Get(0); prs != nil {
		return prs.([]models.PaymentRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepo) UpdateStatus(id uint, status string) error {
	return m.Called(id, status).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error  { return m.Called(user).Error(0) }
func (m *MockUserRepo) Update(user *models.User) error  { return m.Called(user).Error(0) }
func (m *MockUserRepo) Delete(id uint) error            { return m.Called(id).Error(0) }
func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}
func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return m.Called(userID, hashedPassword).Error(0)
}
func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	return nil, 0, args.Error(2)
}

func TestCreatePaymentRequest(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", uint(1)).Return(&models.User{Name: "Ravi Kumar", Username: "ravi"}, nil)

	requests := new(MockRequestRepo)
	requests.On("Create", mock.Anything).Return(nil)

	svc := NewService(requests, users)

	amount := 750.0
	pr, err := svc.CreatePaymentRequest(context.Background(), 1, &amount, "dinner")
	require.NoError(t, err)

	assert.Equal(t, "ravi@finch", pr.VPA)
	assert.NotEmpty(t, pr.Code)
	assert.NotNil(t, pr.ExpiresAt, "amount-bearing requests must expire")

	require.True(t, strings.HasPrefix(pr.Payload, "upi://pay?"))
	parsed, err := url.ParseQuery(strings.TrimPrefix(pr.Payload, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "ravi@finch", parsed.Get("pa"))
	assert.Equal(t, "Ravi Kumar", parsed.Get("pn"))
	assert.Equal(t, "750.00", parsed.Get("am"))
	assert.Equal(t, "dinner", parsed.Get("tn"))
	assert.Equal(t, "INR", parsed.Get("cu"))
}

func TestCreatePaymentRequest_StaticCode(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", uint(1)).Return(&models.User{Name: "Ravi Kumar", Username: "ravi"}, nil)

	requests := new(MockRequestRepo)
	requests.On("Create", mock.Anything).Return(nil)

	svc := NewService(requests, users)

	pr, err := svc.CreatePaymentRequest(context.Background(), 1, nil, "")
	require.NoError(t, err)

	assert.Nil(t, pr.ExpiresAt, "static receive codes do not expire")
	assert.NotContains(t, pr.Payload, "am=")
}

func TestGetUserRequests_ExpiresStaleCodes(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	requests := new(MockRequestRepo)
	requests.On("GetByUserID", uint(1)).Return([]models.PaymentRequest{
		{ID: 1, UserID: 1, Status: models.PaymentRequestActive, ExpiresAt: &past},
		{ID: 2, UserID: 1, Status: models.PaymentRequestActive, ExpiresAt: &future},
		{ID: 3, UserID: 1, Status: models.PaymentRequestActive}, // static code
	}, nil)
	requests.On("UpdateStatus", uint(1), models.PaymentRequestExpired).Return(nil)

	svc := NewService(requests, new(MockUserRepo))
	prs, err := svc.GetUserRequests(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, prs, 3)

	assert.Equal(t, models.PaymentRequestExpired, prs[0].Status)
	assert.Equal(t, models.PaymentRequestActive, prs[1].Status)
	assert.Equal(t, models.PaymentRequestActive, prs[2].Status)
	requests.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestRevokeRequest(t *testing.T) {
	t.Run("owner revokes", func(t *testing.T) {
		requests := new(MockRequestRepo)
		requests.On("GetByCode", "abc123").
			Return(&models.PaymentRequest{ID: 5, UserID: 1, Code: "abc123", Status: models.PaymentRequestActive}, nil)
		requests.On("UpdateStatus", uint(5), models.PaymentRequestRevoked).Return(nil)

		svc := NewService(requests, new(MockUserRepo))
		require.NoError(t, svc.RevokeRequest(context.Background(), 1, "abc123"))
		requests.AssertExpectations(t)
	})

	t.Run("someone else's code answers not-found", func(t *testing.T) {
		requests := new(MockRequestRepo)
		requests.On("GetByCode", "abc123").
			Return(&models.PaymentRequest{ID: 5, UserID: 2, Code: "abc123"}, nil)

		svc := NewService(requests, new(MockUserRepo))
		err := svc.RevokeRequest(context.Background(), 1, "abc123")
		assert.ErrorIs(t, err, ErrRequestNotFound)
		requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("unknown code", func(t *testing.T) {
		requests := new(MockRequestRepo)
		requests.On("GetByCode", "nope").Return(nil, repositories.ErrPaymentRequestNotFound)

		svc := NewService(requests, new(MockUserRepo))
		err := svc.RevokeRequest(context.Background(), 1, "nope")
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}
