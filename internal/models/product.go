package models

import "time"

// Product 整机商品（PC）
type Product struct {
	ID                  uint        `gorm:"primarykey" json:"id"`                                       // 主键
	CategoryID          *uint       `gorm:"index" json:"category_id"`                                   // 分类ID
	Name                string      `gorm:"type:varchar(200);not null" json:"name"`                     // 名称
	Slug                string      `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`         // 唯一标识（由名称生成）
	Subtitle            string      `gorm:"type:varchar(255)" json:"subtitle"`                          // 副标题
	Description         string      `gorm:"type:text" json:"description"`                               // 描述
	Price               Money       `gorm:"type:decimal(12,2);not null;default:0" json:"price"`         // 售价
	PriceOld            *Money      `gorm:"type:decimal(12,2)" json:"price_old,omitempty"`              // 划线价
	Processor           string      `gorm:"type:varchar(160)" json:"processor"`                         // 处理器
	GPU                 string      `gorm:"column:gpu;type:varchar(160)" json:"gpu"`                    // 显卡
	RAM                 string      `gorm:"column:ram;type:varchar(120)" json:"ram"`                    // 内存
	Storage             string      `gorm:"type:varchar(160)" json:"storage"`                           // 存储
	Motherboard         string      `gorm:"type:varchar(160)" json:"motherboard"`                       // 主板
	PSU                 string      `gorm:"column:psu;type:varchar(160)" json:"psu"`                    // 电源
	CaseModel           string      `gorm:"type:varchar(160)" json:"case_model"`                        // 机箱
	Cooling             string      `gorm:"type:varchar(160)" json:"cooling"`                           // 散热
	GraffitiArtist      string      `gorm:"type:varchar(120)" json:"graffiti_artist"`                   // 涂装艺术家
	GraffitiStyle       string      `gorm:"type:varchar(120)" json:"graffiti_style"`                    // 涂装风格
	GraffitiDescription string      `gorm:"type:text" json:"graffiti_description"`                      // 涂装说明
	SetupPrice          Money       `gorm:"type:decimal(12,2);not null;default:150" json:"setup_price"` // 展示用装机服务价
	ImageMain           string      `gorm:"type:varchar(500)" json:"image_main"`                        // 主图
	Images              StringArray `gorm:"type:text" json:"images"`                                    // 图集
	Featured            bool        `gorm:"default:false;index" json:"featured"`                        // 首页推荐
	Bestseller          bool        `gorm:"default:false" json:"bestseller"`                            // 热卖
	LimitedEdition      bool        `gorm:"default:false" json:"limited_edition"`                       // 限量
	PreOrder            bool        `gorm:"default:false" json:"pre_order"`                             // 预售
	InStock             bool        `gorm:"default:true" json:"in_stock"`                               // 有货
	Active              bool        `gorm:"default:true;index" json:"active"`                           // 是否上架
	Views               int64       `gorm:"not null;default:0;index" json:"views"`                      // 浏览次数
	CreatedAt           time.Time   `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt           time.Time   `json:"updated_at"`                                                 // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类
}

// TableName 指定表名
func (Product) TableName() string {
	return "pcs"
}
