package service

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

// NewsletterService 资讯订阅
type NewsletterService struct {
	repo     repository.NewsletterRepository
	notifier Notifier
}

// NewNewsletterService 创建订阅服务
func NewNewsletterService(repo repository.NewsletterRepository, notifier Notifier) *NewsletterService {
	return &NewsletterService{repo: repo, notifier: notifier}
}

// Subscribe 幂等订阅，返回是否为新订阅
func (s *NewsletterService) Subscribe(email, source, locale string) (bool, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return false, ErrInvalidEmail
	}
	if strings.TrimSpace(source) == "" {
		source = "site"
	}
	created, err := s.repo.Subscribe(&models.NewsletterSubscriber{Email: email, Source: source, Active: true})
	if err != nil {
		return false, persistenceError("subscribe newsletter", err)
	}
	if created {
		logger.Infow("newsletter_subscribed", "source", source)
		notifyNewsletterWelcome(s.notifier, email, locale)
	}
	return created, nil
}

// List 后台订阅列表
func (s *NewsletterService) List(filter repository.SubscriberListFilter) ([]models.NewsletterSubscriber, int64, error) {
	subscribers, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, persistenceError("list subscribers", err)
	}
	return subscribers, total, nil
}
