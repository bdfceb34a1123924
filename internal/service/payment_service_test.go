package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "digimart/internal/errors"
	"digimart/internal/model"
	"digimart/internal/notify"
)

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func newPaymentService(paymentRepo *MockPaymentRepository, productRepo *MockProductRepository) PaymentService {
	return NewPaymentService(paymentRepo, productRepo, notify.NewBus())
}

func TestPaymentService_Submit(t *testing.T) {
	userID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	tests := []struct {
		name          string
		referenceID   string
		amount        decimal.Decimal
		productIDs    []uuid.UUID
		setupMock     func(*MockPaymentRepository)
		expectedError error
	}{
		{
			name:        "successful submission",
			referenceID: "UPI2024ABCDE1",
			amount:      decimal.NewFromInt(770),
			productIDs:  []uuid.UUID{productA, productB},
			setupMock: func(m *MockPaymentRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing reference id",
			referenceID:   "",
			amount:        decimal.NewFromInt(770),
			productIDs:    []uuid.UUID{productA},
			setupMock:     func(m *MockPaymentRepository) {},
			expectedError: apperrors.ErrMissingReference,
		},
		{
			name:          "empty product list",
			referenceID:   "UPI2024ABCDE1",
			amount:        decimal.NewFromInt(770),
			productIDs:    nil,
			setupMock:     func(m *MockPaymentRepository) {},
			expectedError: apperrors.ErrEmptyCart,
		},
		{
			name:          "non-positive amount",
			referenceID:   "UPI2024ABCDE1",
			amount:        decimal.Zero,
			productIDs:    []uuid.UUID{productA},
			setupMock:     func(m *MockPaymentRepository) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := new(MockPaymentRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockPayments)

			svc := newPaymentService(mockPayments, mockProducts)
			payment, err := svc.Submit(context.Background(), userID, tt.referenceID, tt.amount, tt.productIDs)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, payment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, model.PaymentStatusPending, payment.Status)
				assert.Equal(t, userID, payment.UserID)
				assert.Equal(t, tt.referenceID, payment.ReferenceID)
				// items keep submission order
				assert.Equal(t, tt.productIDs, payment.ProductIDs())
				for i, item := range payment.Items {
					assert.Equal(t, i, item.Position)
				}
			}

			mockPayments.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Approve(t *testing.T) {
	paymentID := uuid.New()

	t.Run("approves a pending payment", func(t *testing.T) {
		mockPayments := new(MockPaymentRepository)
		mockProducts := new(MockProductRepository)
		mockPayments.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
			ID:     paymentID,
			Status: model.PaymentStatusPending,
		}, nil)
		mockPayments.On("UpdateStatus", mock.Anything, paymentID, model.PaymentStatusApproved).Return(nil)

		svc := newPaymentService(mockPayments, mockProducts)
		payment, err := svc.Approve(context.Background(), paymentID)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusApproved, payment.Status)
		mockPayments.AssertExpectations(t)
	})

	t.Run("approving an approved payment succeeds", func(t *testing.T) {
		mockPayments := new(MockPaymentRepository)
		mockProducts := new(MockProductRepository)
		mockPayments.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
			ID:     paymentID,
			Status: model.PaymentStatusApproved,
		}, nil)
		mockPayments.On("UpdateStatus", mock.Anything, paymentID, model.PaymentStatusApproved).Return(nil)

		svc := newPaymentService(mockPayments, mockProducts)
		payment, err := svc.Approve(context.Background(), paymentID)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusApproved, payment.Status)
	})

	t.Run("missing payment", func(t *testing.T) {
		mockPayments := new(MockPaymentRepository)
		mockProducts := new(MockProductRepository)
		mockPayments.On("FindByID", mock.Anything, paymentID).Return(nil, gorm.ErrRecordNotFound)

		svc := newPaymentService(mockPayments, mockProducts)
		payment, err := svc.Approve(context.Background(), paymentID)

		assert.Equal(t, apperrors.ErrPaymentNotFound, err)
		assert.Nil(t, payment)
	})
}

func TestPaymentService_Reject(t *testing.T) {
	paymentID := uuid.New()

	t.Run("deletes the payment", func(t *testing.T) {
		mockPayments := new(MockPaymentRepository)
		mockProducts := new(MockProductRepository)
		mockPayments.On("Delete", mock.Anything, paymentID).Return(nil)

		svc := newPaymentService(mockPayments, mockProducts)
		err := svc.Reject(context.Background(), paymentID)

		assert.NoError(t, err)
		mockPayments.AssertExpectations(t)
	})

	t.Run("missing payment", func(t *testing.T) {
		mockPayments := new(MockPaymentRepository)
		mockProducts := new(MockProductRepository)
		mockPayments.On("Delete", mock.Anything, paymentID).Return(gorm.ErrRecordNotFound)

		svc := newPaymentService(mockPayments, mockProducts)
		err := svc.Reject(context.Background(), paymentID)

		assert.Equal(t, apperrors.ErrPaymentNotFound, err)
	})
}

func TestPaymentService_ListPending(t *testing.T) {
	paymentID := uuid.New()
	userID := uuid.New()
	productA := model.Product{
		ID:    uuid.New(),
		Name:  "Invoice Generator Script",
		Price: decimal.NewFromInt(500),
	}
	deletedProductID := uuid.New()

	mockPayments := new(MockPaymentRepository)
	mockProducts := new(MockProductRepository)

	mockPayments.On("ListByStatus", mock.Anything, model.PaymentStatusPending).Return([]model.Payment{
		{
			ID:          paymentID,
			UserID:      userID,
			User:        model.User{Name: "Test Buyer", Email: "buyer@example.com"},
			Amount:      decimal.NewFromInt(770),
			ReferenceID: "UPI2024ABCDE1",
			Status:      model.PaymentStatusPending,
			Items: []model.PaymentItem{
				{ProductID: productA.ID, Position: 0},
				{ProductID: deletedProductID, Position: 1},
			},
		},
	}, nil)
	// only the surviving product resolves
	mockProducts.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Product{productA}, nil)

	svc := newPaymentService(mockPayments, mockProducts)
	entries, err := svc.ListPending(context.Background())

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "buyer@example.com", entry.BuyerEmail)
	assert.Equal(t, "UPI2024ABCDE1", entry.ReferenceID)
	assert.Equal(t, model.PaymentStatusPending, entry.Status)
	// the dangling reference to the deleted product is skipped
	assert.Len(t, entry.Products, 1)
	assert.Equal(t, productA.Name, entry.Products[0].Name)
	assert.True(t, entry.Products[0].Price.Equal(productA.Price))
}
