package service

import (
	"context"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

// CustomerService 顾客资料与后台顾客查询
type CustomerService struct {
	repo      repository.CustomerRepository
	orderRepo repository.OrderRepository
}

// NewCustomerService 创建顾客服务
func NewCustomerService(repo repository.CustomerRepository, orderRepo repository.OrderRepository) *CustomerService {
	return &CustomerService{repo: repo, orderRepo: orderRepo}
}

// ProfileInput 资料更新输入
type ProfileInput struct {
	Name         string
	Phone        string
	CPF          string
	CEP          string
	Address      string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Newsletter   bool
}

// Get 读取顾客
func (s *CustomerService) Get(id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, persistenceError("load customer", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// UpdateProfile 更新资料
func (s *CustomerService) UpdateProfile(id uint, input ProfileInput) (*models.Customer, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	customer.Name = name
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.CPF = strings.TrimSpace(input.CPF)
	customer.CEP = strings.TrimSpace(input.CEP)
	customer.Address = strings.TrimSpace(input.Address)
	customer.Number = strings.TrimSpace(input.Number)
	customer.Complement = strings.TrimSpace(input.Complement)
	customer.Neighborhood = strings.TrimSpace(input.Neighborhood)
	customer.City = strings.TrimSpace(input.City)
	customer.State = strings.ToUpper(strings.TrimSpace(input.State))
	customer.Newsletter = input.Newsletter
	if err := s.repo.Update(customer); err != nil {
		return nil, persistenceError("update customer", err)
	}
	return customer, nil
}

// ChangePassword 校验旧密码后修改，并使已签发令牌失效
func (s *CustomerService) ChangePassword(id uint, oldPassword, newPassword string) error {
	customer, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := VerifyPassword(customer.PasswordHash, oldPassword); err != nil {
		return ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return ErrValidation
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	customer.PasswordHash = hash
	customer.TokenVersion++
	if err := s.repo.Update(customer); err != nil {
		return persistenceError("update customer password", err)
	}
	_ = cache.DelIdentityState(context.Background(), constants.IdentityCustomer, customer.ID)
	return nil
}

// List 后台顾客列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	customers, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, persistenceError("list customers", err)
	}
	return customers, total, nil
}

// CustomerDetail 后台顾客详情
type CustomerDetail struct {
	Customer *models.Customer `json:"customer"`
	Orders   []models.Order   `json:"orders"`
}

// Detail 后台顾客详情，附最近订单
func (s *CustomerService) Detail(id uint) (*CustomerDetail, error) {
	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	orders, _, err := s.orderRepo.ListByCustomer(id, 1, 20)
	if err != nil {
		return nil, persistenceError("list customer orders", err)
	}
	return &CustomerDetail{Customer: customer, Orders: orders}, nil
}
