package service

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

// GameService 游戏管理
type GameService struct {
	repo repository.GameRepository
}

// NewGameService 创建游戏服务
func NewGameService(repo repository.GameRepository) *GameService {
	return &GameService{repo: repo}
}

// GameInput 创建/更新游戏输入
type GameInput struct {
	Name   string
	Genre  string
	Image  string
	Active *bool
}

// List 游戏列表
func (s *GameService) List() ([]models.Game, error) {
	games, err := s.repo.List(false)
	if err != nil {
		return nil, persistenceError("list games", err)
	}
	return games, nil
}

// Create 创建游戏
func (s *GameService) Create(input GameInput) (*models.Game, error) {
	slug, err := s.slugFor(input.Name, 0)
	if err != nil {
		return nil, err
	}
	game := &models.Game{
		Name:   strings.TrimSpace(input.Name),
		Slug:   slug,
		Genre:  strings.TrimSpace(input.Genre),
		Image:  strings.TrimSpace(input.Image),
		Active: input.Active == nil || *input.Active,
	}
	if err := s.repo.Create(game); err != nil {
		return nil, persistenceError("create game", err)
	}
	if !game.Active {
		if err := s.repo.Update(game); err != nil {
			return nil, persistenceError("create game", err)
		}
	}
	return game, nil
}

// Update 更新游戏
func (s *GameService) Update(id uint, input GameInput) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return nil, persistenceError("load game", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if name := strings.TrimSpace(input.Name); name != game.Name {
		slug, err := s.slugFor(name, id)
		if err != nil {
			return nil, err
		}
		game.Name = name
		game.Slug = slug
	}
	game.Genre = strings.TrimSpace(input.Genre)
	game.Image = strings.TrimSpace(input.Image)
	if input.Active != nil {
		game.Active = *input.Active
	}
	if err := s.repo.Update(game); err != nil {
		return nil, persistenceError("update game", err)
	}
	return game, nil
}

// Delete 删除游戏
func (s *GameService) Delete(id uint) error {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return persistenceError("load game", err)
	}
	if game == nil {
		return ErrGameNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return persistenceError("delete game", err)
	}
	return nil
}

func (s *GameService) slugFor(name string, excludeID uint) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", ErrValidation
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return "", persistenceError("count game slug", err)
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}
