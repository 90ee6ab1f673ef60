package survey

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=survey_repo.go -destination=mock/survey_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, s *Survey) error
	FindByID(ctx context.Context, id string) (*Survey, error)
	FindAll(ctx context.Context) ([]Survey, error)
	Delete(ctx context.Context, id string) error
	CountResponses(ctx context.Context, surveyID string) (int64, error)
	CreateResponse(ctx context.Context, resp *Response) error
	HasResponse(ctx context.Context, surveyID, employeeID string) (bool, error)
	ListResponses(ctx context.Context, surveyID string) ([]Response, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Survey) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Survey, error) {
	var s Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("survey_questions.position ASC")
		}).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindAll(ctx context.Context) ([]Survey, error) {
	var surveys []Survey
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Survey{}, "id = ?", id).Error
}

func (r *repository) CountResponses(ctx context.Context, surveyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Response{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateResponse(ctx context.Context, resp *Response) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *repository) HasResponse(ctx context.Context, surveyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Response{}).
		Where("survey_id = ? AND employee_id = ?", surveyID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListResponses(ctx context.Context, surveyID string) ([]Response, error) {
	var responses []Response
	err := r.db.WithContext(ctx).
		Preload("Answers").
		Where("survey_id = ?", surveyID).
		Order("submitted_at ASC").
		Find(&responses).Error
	return responses, err
}
