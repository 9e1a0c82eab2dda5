package repository

import (
	"github.com/sardorbek/kalit/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(user *model.User) error
	UpdateUsername(id int64, username string) error
	FindByID(id int64) (*model.User, error)
	Exists(id int64) (bool, error)
	FindAll() ([]model.User, error)
	AllIDs() ([]int64, error)
	Count() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Upsert registers a user or refreshes name/phone/username on re-registration.
func (r *userRepository) Upsert(user *model.User) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "username"}),
	}).Create(user).Error
}

func (r *userRepository) UpdateUsername(id int64, username string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("username", username).Error
}

func (r *userRepository) FindByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) AllIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.User{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}
