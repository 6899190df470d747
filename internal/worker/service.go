package worker

import (
	"context"
	"errors"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	cartPurgeInterval = time.Hour
)

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	cartMaxAge   time.Duration
	stopCartLoop context.CancelFunc
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	serverCfg.Logger = logger.S()
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:       "worker",
		server:     server,
		mux:        mux,
		consumer:   consumer,
		cartMaxAge: time.Duration(cfg.Store.CartCookieMaxAge) * time.Second,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CartService != nil && s.cartMaxAge > 0 {
		loopCtx, cancel := context.WithCancel(ctx)
		s.stopCartLoop = cancel
		go s.runCartPurgeLoop(loopCtx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	if s.stopCartLoop != nil {
		s.stopCartLoop()
	}
	s.server.Shutdown()
	return nil
}

func (s *Service) runCartPurgeLoop(ctx context.Context) {
	runOnce := func() {
		purged, err := s.consumer.CartService.PurgeStale(s.cartMaxAge, time.Now())
		if err != nil {
			logger.Warnw("worker_cart_purge_failed", "error", err)
			return
		}
		if purged > 0 {
			logger.Infow("worker_cart_purged", "carts", purged)
		}
	}
	runOnce()

	ticker := time.NewTicker(cartPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
