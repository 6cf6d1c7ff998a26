package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type HeroSlideGormRepository struct {
	db *gorm.DB
}

func NewHeroSlideGormRepository(db *gorm.DB) *HeroSlideGormRepository {
	return &HeroSlideGormRepository{db: db}
}

func (r *HeroSlideGormRepository) ListActive(ctx context.Context) ([]model.HeroSlide, error) {
	var slides []model.HeroSlide
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").Order("id asc").
		Find(&slides).Error
	if err != nil {
		return []model.HeroSlide{}, err
	}
	return slides, nil
}

func (r *HeroSlideGormRepository) ListAll(ctx context.Context) ([]model.HeroSlide, error) {
	var slides []model.HeroSlide
	err := r.db.WithContext(ctx).
		Order("sort_order asc").Order("id asc").
		Find(&slides).Error
	if err != nil {
		return []model.HeroSlide{}, err
	}
	return slides, nil
}

func (r *HeroSlideGormRepository) FindByID(ctx context.Context, id int64) (model.HeroSlide, error) {
	var s model.HeroSlide
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.HeroSlide{}, repo.ErrNotFound
	}
	if err != nil {
		return model.HeroSlide{}, err
	}
	return s, nil
}

func (r *HeroSlideGormRepository) Create(ctx context.Context, s model.HeroSlide) (model.HeroSlide, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.HeroSlide{}, err
	}
	return s, nil
}

func (r *HeroSlideGormRepository) Update(ctx context.Context, s model.HeroSlide) error {
	res := r.db.WithContext(ctx).Model(&model.HeroSlide{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"title":      s.Title,
		"subtitle":   s.Subtitle,
		"image":      s.Image,
		"link":       s.Link,
		"sort_order": s.SortOrder,
		"is_active":  s.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *HeroSlideGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.HeroSlide{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
