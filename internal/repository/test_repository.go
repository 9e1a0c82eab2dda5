package repository

import (
	"errors"
	"time"

	"github.com/sardorbek/kalit/internal/model"
	"gorm.io/gorm"
)

// TestSearchRow is one admin search hit, joined with the creator's name.
type TestSearchRow struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	CreatorName string    `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type TestRepository interface {
	Create(test *model.Test) error
	FindByCode(code string) (*model.Test, error)
	Update(code, newName, newAnswers string) error
	UpdateScores(code, scores string) error
	FindByCreator(creatorID int64) ([]model.Test, error)
	DeleteByCode(code string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	Search(query string, limit int) ([]TestSearchRow, error)
	Count() (int64, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

// FindByCode resolves a test by code, case-insensitively. Stored codes
// are normalized to upper case, so one UPPER on the input suffices.
func (r *testRepository) FindByCode(code string) (*model.Test, error) {
	var test model.Test
	err := r.db.Where("code = UPPER(?)", code).First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) Update(code, newName, newAnswers string) error {
	res := r.db.Model(&model.Test{}).Where("code = UPPER(?)", code).
		Updates(map[string]interface{}{"name": newName, "answers": newAnswers})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrTestNotFound
	}
	return nil
}

func (r *testRepository) UpdateScores(code, scores string) error {
	res := r.db.Model(&model.Test{}).Where("code = UPPER(?)", code).Update("scores", scores)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrTestNotFound
	}
	return nil
}

func (r *testRepository) FindByCreator(creatorID int64) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *testRepository) DeleteByCode(code string) error {
	res := r.db.Where("code = UPPER(?)", code).Delete(&model.Test{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrTestNotFound
	}
	return nil
}

// DeleteOlderThan removes tests created strictly before cutoff and
// reports how many were removed. Results and attempt records go with
// them via the FK cascade.
func (r *testRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&model.Test{})
	return res.RowsAffected, res.Error
}

func (r *testRepository) Search(query string, limit int) ([]TestSearchRow, error) {
	var rows []TestSearchRow
	pattern := "%" + query + "%"
	err := r.db.Raw(`
		SELECT t.id, t.code, t.name, t.created_at, u.name AS creator_name
		FROM tests t
		JOIN users u ON t.creator_id = u.id
		WHERE t.code ILIKE ? OR t.name ILIKE ?
		ORDER BY t.created_at DESC
		LIMIT ?`, pattern, pattern, limit).Scan(&rows).Error
	return rows, err
}

func (r *testRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Test{}).Count(&count).Error
	return count, err
}
