package service

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

// ReviewService 评价提交与审核
type ReviewService struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{repo: repo, productRepo: productRepo, orderRepo: orderRepo}
}

// SubmitReviewInput 提交评价
type SubmitReviewInput struct {
	ProductID uint
	OrderID   *uint
	Rating    int
	Title     string
	Comment   string
}

// Submit 顾客提交评价，进入待审核
func (s *ReviewService) Submit(customerID uint, input SubmitReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetActiveByID(input.ProductID)
	if err != nil {
		return nil, persistenceError("load pc", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if input.OrderID != nil && *input.OrderID != 0 {
		order, err := s.orderRepo.GetByID(*input.OrderID)
		if err != nil {
			return nil, persistenceError("load order", err)
		}
		if order == nil || order.CustomerID == nil || *order.CustomerID != customerID {
			return nil, ErrOrderNotFound
		}
	} else {
		input.OrderID = nil
	}
	review := &models.Review{
		ProductID:  product.ID,
		CustomerID: customerID,
		OrderID:    input.OrderID,
		Rating:     input.Rating,
		Title:      strings.TrimSpace(input.Title),
		Comment:    strings.TrimSpace(input.Comment),
		Status:     constants.ReviewStatusPending,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, persistenceError("create review", err)
	}
	return review, nil
}

// List 后台审核列表
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	reviews, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, persistenceError("list reviews", err)
	}
	return reviews, total, nil
}

// Moderate 审核通过或驳回
func (s *ReviewService) Moderate(id uint, status string) error {
	status = strings.TrimSpace(status)
	if status != constants.ReviewStatusApproved && status != constants.ReviewStatusRejected {
		return ErrValidation
	}
	affected, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return persistenceError("moderate review", err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
