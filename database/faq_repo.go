package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type FaqRepo struct {
	db *gorm.DB
}

func NewFaqRepo(db *gorm.DB) *FaqRepo {
	return &FaqRepo{db}
}

// FindByService returns the FAQs owned by a service in display order
func (r *FaqRepo) FindByService(ctx context.Context, serviceID uuid.UUID) ([]models.Faq, error) {
	var faqs []models.Faq
	err := orderedFaqs(r.db.WithContext(ctx).Where("service_id = ?", serviceID)).Find(&faqs).Error
	return faqs, err
}

// FindByIDs returns whichever of ids exist, regardless of owner
func (r *FaqRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Faq, error) {
	var faqs []models.Faq
	if len(ids) == 0 {
		return faqs, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&faqs).Error
	return faqs, err
}

func (r *FaqRepo) AddMany(ctx context.Context, faqs []models.Faq) error {
	if len(faqs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&faqs).Error
}

// UpdateContent overwrites question, answer and position of a FAQ owned by serviceID
func (r *FaqRepo) UpdateContent(ctx context.Context, serviceID uuid.UUID, faq models.Faq) error {
	return r.db.WithContext(ctx).
		Model(&models.Faq{}).
		Where("id = ? AND service_id = ?", faq.ID, serviceID).
		Updates(map[string]interface{}{"question": faq.Question, "answer": faq.Answer, "position": faq.Position}).Error
}

// DeleteByIDs removes the given FAQs of serviceID; ids owned by other services are ignored
func (r *FaqRepo) DeleteByIDs(ctx context.Context, serviceID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("service_id = ? AND id IN ?", serviceID, ids).Delete(&models.Faq{}).Error
}
