package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch dialect {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// buildLikeCondition 为多个列生成 OR 连接的模糊匹配条件，返回条件与参数
func buildLikeCondition(db *gorm.DB, columns []string, term string) (string, []interface{}) {
	return buildLikeConditionByDialect(dbDialectName(db), columns, term)
}

func buildLikeConditionByDialect(dialect string, columns []string, term string) (string, []interface{}) {
	operator := likeOperatorByDialect(dialect)
	like := "%" + escapeLike(term) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		if operator == "LIKE" {
			// sqlite 的 LIKE 仅对 ASCII 忽略大小写
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE LOWER(?) ESCAPE '\\'", column))
		} else {
			parts = append(parts, fmt.Sprintf("%s ILIKE ? ESCAPE '\\'", column))
		}
		args = append(args, like)
	}
	return strings.Join(parts, " OR "), args
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// randomOrder sqlite 与 postgres 通用的随机排序表达式
const randomOrder = "RANDOM()"
