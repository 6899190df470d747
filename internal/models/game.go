package models

import "time"

// Game 游戏（用于展示整机性能）
type Game struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name      string    `gorm:"type:varchar(160);not null" json:"name"`             // 名称
	Slug      string    `gorm:"type:varchar(180);uniqueIndex;not null" json:"slug"` // 唯一标识
	Genre     string    `gorm:"type:varchar(80)" json:"genre"`                      // 类型
	Image     string    `gorm:"type:varchar(500)" json:"image"`                     // 封面
	Active    bool      `gorm:"default:true;index" json:"active"`                   // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (Game) TableName() string {
	return "games"
}

// ProductGame 整机与游戏的性能关联
type ProductGame struct {
	ID          uint   `gorm:"primarykey" json:"id"`                                        // 主键
	ProductID   uint   `gorm:"column:pc_id;not null;uniqueIndex:idx_pc_game" json:"pc_id"`  // 整机ID
	GameID      uint   `gorm:"not null;uniqueIndex:idx_pc_game" json:"game_id"`             // 游戏ID
	Performance int    `gorm:"not null;default:0" json:"performance"`                       // 性能评分（0-100）
	FPSAvg      int    `gorm:"column:fps_avg;not null;default:0" json:"fps_avg"`            // 平均帧数
	Resolution  string `gorm:"type:varchar(20);not null;default:'1080p'" json:"resolution"` // 测试分辨率

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"` // 游戏
}

// TableName 指定表名
func (ProductGame) TableName() string {
	return "pc_games"
}
