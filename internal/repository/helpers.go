package repository

import (
	"strings"

	"gorm.io/gorm"
)

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// addPoints applies delta to the points column of one row, clamping at zero.
func addPoints(db *gorm.DB, model interface{}, id uint64, delta int64) error {
	result := db.Model(model).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("CASE WHEN points + ? < 0 THEN 0 ELSE points + ? END", delta, delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// rankOf returns 1 + the number of rows of model with more than points.
func rankOf(db *gorm.DB, model interface{}, points int64) (int64, error) {
	var ahead int64
	if err := db.Model(model).Where("points > ?", points).Count(&ahead).Error; err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// deleteByID deletes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID(db *gorm.DB, model interface{}, id uint64) error {
	result := db.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
