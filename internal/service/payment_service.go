package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "digimart/internal/errors"
	"digimart/internal/model"
	"digimart/internal/notify"
	"digimart/internal/repository"
)

// ReviewProduct is the per-product slice of an admin review row.
type ReviewProduct struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ReviewEntry is one payment expanded for the admin queue: the payment fields
// plus buyer identity and the referenced products' name and price.
type ReviewEntry struct {
	ID          uuid.UUID           `json:"id"`
	BuyerName   string              `json:"buyerName"`
	BuyerEmail  string              `json:"buyerEmail"`
	Amount      decimal.Decimal     `json:"amount"`
	ReferenceID string              `json:"referenceId"`
	Status      model.PaymentStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	Products    []ReviewProduct     `json:"products"`
}

// PaymentService is the order lifecycle manager. A cart submission becomes a
// Pending payment; an admin either approves it (terminal) or rejects it, which
// deletes the record outright.
type PaymentService interface {
	Submit(ctx context.Context, userID uuid.UUID, referenceID string, amount decimal.Decimal, productIDs []uuid.UUID) (*model.Payment, error)
	Approve(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	Reject(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]ReviewEntry, error)
	ListApproved(ctx context.Context) ([]ReviewEntry, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	bus         *notify.Bus
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, productRepo repository.ProductRepository, bus *notify.Bus) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		bus:         bus,
	}
}

// Submit records a UPI payment reference as Pending. The amount is taken as
// submitted and is not recomputed against the catalog; the admin reviewing
// the reference id is the verification step. The reference id itself only has
// to be non-empty here, length checks belong to the client.
func (s *paymentService) Submit(ctx context.Context, userID uuid.UUID, referenceID string, amount decimal.Decimal, productIDs []uuid.UUID) (*model.Payment, error) {
	if referenceID == "" {
		return nil, apperrors.ErrMissingReference
	}
	if len(productIDs) == 0 {
		return nil, apperrors.ErrEmptyCart
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	items := make([]model.PaymentItem, len(productIDs))
	for i, productID := range productIDs {
		items[i] = model.PaymentItem{ProductID: productID, Position: i}
	}

	payment := &model.Payment{
		UserID:      userID,
		Amount:      amount,
		ReferenceID: referenceID,
		Status:      model.PaymentStatusPending,
		Items:       items,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.bus.Info(fmt.Sprintf("payment %s submitted, awaiting admin approval", payment.ID))
	return payment, nil
}

// Approve moves a payment to Approved. Approving an already approved payment
// rewrites the same status and succeeds; the status never moves back to
// Pending.
func (s *paymentService) Approve(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, model.PaymentStatusApproved); err != nil {
		return nil, fmt.Errorf("approve payment: %w", err)
	}
	payment.Status = model.PaymentStatusApproved

	s.bus.Success(fmt.Sprintf("payment %s approved, downloads unlocked", payment.ID))
	return payment, nil
}

// Reject deletes the payment outright. There is no rejected status and no
// audit trail of the record afterwards. Approved payments are not protected
// from rejection.
func (s *paymentService) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPaymentNotFound
		}
		return fmt.Errorf("reject payment: %w", err)
	}

	s.bus.Warning(fmt.Sprintf("payment %s rejected and removed", id))
	return nil
}

// ListPending returns the admin review queue in insertion order.
func (s *paymentService) ListPending(ctx context.Context) ([]ReviewEntry, error) {
	return s.listByStatus(ctx, model.PaymentStatusPending)
}

// ListApproved returns approved payments in insertion order.
func (s *paymentService) ListApproved(ctx context.Context) ([]ReviewEntry, error) {
	return s.listByStatus(ctx, model.PaymentStatusApproved)
}

func (s *paymentService) listByStatus(ctx context.Context, status model.PaymentStatus) ([]ReviewEntry, error) {
	payments, err := s.paymentRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	products, err := s.productsByID(ctx, payments)
	if err != nil {
		return nil, err
	}

	entries := make([]ReviewEntry, 0, len(payments))
	for _, payment := range payments {
		entry := ReviewEntry{
			ID:          payment.ID,
			BuyerName:   payment.User.Name,
			BuyerEmail:  payment.User.Email,
			Amount:      payment.Amount,
			ReferenceID: payment.ReferenceID,
			Status:      payment.Status,
			CreatedAt:   payment.CreatedAt,
			Products:    make([]ReviewProduct, 0, len(payment.Items)),
		}
		for _, item := range payment.Items {
			product, ok := products[item.ProductID]
			if !ok {
				// product deleted after purchase, reference is dangling
				continue
			}
			entry.Products = append(entry.Products, ReviewProduct{
				ID:    product.ID,
				Name:  product.Name,
				Price: product.Price,
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// productsByID resolves every product referenced by the given payments in one
// query.
func (s *paymentService) productsByID(ctx context.Context, payments []model.Payment) (map[uuid.UUID]model.Product, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, payment := range payments {
		for _, item := range payment.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}
