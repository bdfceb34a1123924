package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"digimart/internal/model"
	"digimart/internal/repository"
)

// Purchase is one row of a buyer's dashboard: a (payment, product) pair.
// DownloadLink is populated only once the payment is approved; pending
// purchases still appear, with the link withheld.
type Purchase struct {
	ProductID    uuid.UUID           `json:"productId"`
	Name         string              `json:"name"`
	Price        decimal.Decimal     `json:"price"`
	Status       model.PaymentStatus `json:"status"`
	ReferenceID  string              `json:"referenceId"`
	Amount       decimal.Decimal     `json:"amount"`
	DownloadLink string              `json:"downloadLink,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// AdminView is the dashboard for admins: the whole user base and catalog.
type AdminView struct {
	Users    []model.User    `json:"users"`
	Products []model.Product `json:"products"`
}

// UserView is the dashboard for buyers: their flattened purchase history.
type UserView struct {
	Purchases []Purchase `json:"purchases"`
}

// DashboardView is the tagged variant returned by the dashboard read; exactly
// one of Admin or User is set, matching IsAdmin.
type DashboardView struct {
	IsAdmin bool
	Admin   *AdminView
	User    *UserView
}

// DashboardService derives the role-dependent dashboard read.
type DashboardService interface {
	View(ctx context.Context, user *model.User) (*DashboardView, error)
}

type dashboardService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(userRepo repository.UserRepository, productRepo repository.ProductRepository, paymentRepo repository.PaymentRepository) DashboardService {
	return &dashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
	}
}

// View resolves the caller's role once and builds the matching variant.
func (s *dashboardService) View(ctx context.Context, user *model.User) (*DashboardView, error) {
	if user.IsAdmin {
		return s.adminView(ctx)
	}
	return s.userView(ctx, user.ID)
}

func (s *dashboardService) adminView(ctx context.Context) (*DashboardView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &DashboardView{
		IsAdmin: true,
		Admin:   &AdminView{Users: users, Products: products},
	}, nil
}

// userView flattens every (payment, product) pair of the caller into one
// purchase row, regardless of payment status. Items whose product has since
// been deleted are skipped.
func (s *dashboardService) userView(ctx context.Context, userID uuid.UUID) (*DashboardView, error) {
	payments, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

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

	purchases := make([]Purchase, 0)
	for _, payment := range payments {
		for _, item := range payment.Items {
			product, ok := byID[item.ProductID]
			if !ok {
				continue
			}
			purchase := Purchase{
				ProductID:   product.ID,
				Name:        product.Name,
				Price:       product.Price,
				Status:      payment.Status,
				ReferenceID: payment.ReferenceID,
				Amount:      payment.Amount,
				CreatedAt:   payment.CreatedAt,
			}
			if payment.Status == model.PaymentStatusApproved {
				purchase.DownloadLink = product.DownloadLink
			}
			purchases = append(purchases, purchase)
		}
	}

	return &DashboardView{
		IsAdmin: false,
		User:    &UserView{Purchases: purchases},
	}, nil
}
