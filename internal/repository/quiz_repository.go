package repository

import (
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create validates the quiz definition before persisting it. Malformed
// payloads are rejected at this boundary and never reach scoring.
func (r *QuizRepository) Create(q *model.Quiz) error {
	if err := q.Validate(); err != nil {
		return util.Validation(err)
	}
	return r.DB.Create(q).Error
}

func (r *QuizRepository) AddQuestion(q *model.QuizQuestion) error {
	if err := q.Validate(); err != nil {
		return util.Validation(err)
	}
	return r.DB.Create(q).Error
}

// FindByContentID loads the active quiz for a content item with questions
// in display order.
func (r *QuizRepository) FindByContentID(contentID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		Where("content_id = ? AND is_active = ?", contentID, true).
		First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) SaveResult(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

// HasPassed reports whether the user holds any passing result for the quiz.
func (r *QuizRepository) HasPassed(userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}

// HasPassedForContent is HasPassed keyed by the owning content item.
func (r *QuizRepository) HasPassedForContent(userID, contentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_results.quiz_id").
		Where("quiz_results.user_id = ? AND quizzes.content_id = ? AND quiz_results.passed = ?",
			userID, contentID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) LatestResult(userID, quizID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *QuizRepository) CountResults(userID, quizID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return int(count), err
}
