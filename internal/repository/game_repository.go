package repository

import (
	"errors"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRepository 游戏与性能关联数据访问接口
type GameRepository interface {
	List(onlyActive bool) ([]models.Game, error)
	GetByID(id uint) (*models.Game, error)
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	ListByProduct(productID uint) ([]models.ProductGame, error)
	UpsertProductGame(link *models.ProductGame) error
	DeleteProductGame(productID, gameID uint) (int64, error)
}

// GormGameRepository GORM 实现
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository 创建游戏仓库
func NewGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// List 列出游戏
func (r *GormGameRepository) List(onlyActive bool) ([]models.Game, error) {
	var games []models.Game
	query := r.db.Model(&models.Game{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("name ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GetByID 根据 ID 获取
func (r *GormGameRepository) GetByID(id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

// Create 创建
func (r *GormGameRepository) Create(game *models.Game) error {
	return r.db.Create(game).Error
}

// Update 更新
func (r *GormGameRepository) Update(game *models.Game) error {
	return r.db.Save(game).Error
}

// Delete 删除游戏及其性能关联
func (r *GormGameRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&models.ProductGame{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, id).Error
	})
}

// CountBySlug 统计 slug 占用
func (r *GormGameRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Game{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByProduct 整机兼容游戏，按性能评分降序
func (r *GormGameRepository) ListByProduct(productID uint) ([]models.ProductGame, error) {
	var links []models.ProductGame
	err := r.db.Preload("Game").
		Joins("JOIN games ON games.id = pc_games.game_id AND games.active = ?", true).
		Where("pc_games.pc_id = ?", productID).
		Order("pc_games.performance DESC, pc_games.id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpsertProductGame 新增或覆盖整机与游戏的性能数据
func (r *GormGameRepository) UpsertProductGame(link *models.ProductGame) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pc_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"performance", "fps_avg", "resolution"}),
	}).Create(link).Error
}

// DeleteProductGame 移除关联
func (r *GormGameRepository) DeleteProductGame(productID, gameID uint) (int64, error) {
	result := r.db.Where("pc_id = ? AND game_id = ?", productID, gameID).Delete(&models.ProductGame{})
	return result.RowsAffected, result.Error
}
