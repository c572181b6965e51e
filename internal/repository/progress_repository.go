package repository

import (
	"time"
	"training_platform_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository owns the user_progress table. All writes for one
// (user, content) pair go through single-statement updates so concurrent
// calls cannot tear the attempts counter.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(userID, contentID uint) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.Where("user_id = ? AND content_id = ?", userID, contentID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MapForContents returns the user's progress rows keyed by content id.
// Missing rows simply have no entry; callers treat that as not_started.
func (r *ProgressRepository) MapForContents(userID uint, contentIDs []uint) (map[uint]*model.UserProgress, error) {
	result := make(map[uint]*model.UserProgress, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}

	var rows []model.UserProgress
	err := r.DB.
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].ContentID] = &rows[i]
	}
	return result, nil
}

// Touch creates the progress row on first access and moves not_started to
// in_progress. Completed rows only get their last_accessed bumped; status
// never moves backward.
func (r *ProgressRepository) Touch(userID, contentID uint) (*model.UserProgress, error) {
	now := time.Now()

	p, err := r.Find(userID, contentID)
	if err == gorm.ErrRecordNotFound {
		p = &model.UserProgress{
			UserID:       userID,
			ContentID:    contentID,
			Status:       model.InProgress,
			StartedAt:    &now,
			LastAccessed: now,
		}
		return p, r.DB.Create(p).Error
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"last_accessed": now}
	if p.Status == model.NotStarted || p.Status == "" {
		updates["status"] = model.InProgress
		updates["started_at"] = now
		p.Status = model.InProgress
		p.StartedAt = &now
	}
	p.LastAccessed = now

	err = r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Updates(updates).Error
	return p, err
}

// MarkCompleted upserts the row to completed. Idempotent: a row that is
// already completed is left untouched.
func (r *ProgressRepository) MarkCompleted(userID, contentID uint, score *int) (alreadyCompleted bool, err error) {
	now := time.Now()

	p, err := r.Find(userID, contentID)
	if err == gorm.ErrRecordNotFound {
		p = &model.UserProgress{
			UserID:       userID,
			ContentID:    contentID,
			Status:       model.Completed,
			Score:        score,
			StartedAt:    &now,
			CompletedAt:  &now,
			LastAccessed: now,
		}
		return false, r.DB.Create(p).Error
	}
	if err != nil {
		return false, err
	}

	if p.Status == model.Completed {
		return true, nil
	}

	updates := map[string]interface{}{
		"status":        model.Completed,
		"completed_at":  now,
		"last_accessed": now,
	}
	if score != nil {
		updates["score"] = *score
	}

	err = r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Updates(updates).Error
	return false, err
}

// IncrementAttempts bumps the attempt counter atomically, creating the row
// if the user jumped straight into a quiz.
func (r *ProgressRepository) IncrementAttempts(userID, contentID uint) error {
	res := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Update("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		now := time.Now()
		p := &model.UserProgress{
			UserID:       userID,
			ContentID:    contentID,
			Status:       model.InProgress,
			Attempts:     1,
			StartedAt:    &now,
			LastAccessed: now,
		}
		return r.DB.Create(p).Error
	}
	return nil
}

// CountCompleted counts distinct completed content items among the given
// ids for one user.
func (r *ProgressRepository) CountCompleted(userID uint, contentIDs []uint) (int, error) {
	if len(contentIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND status = ? AND content_id IN ?", userID, model.Completed, contentIDs).
		Count(&count).Error
	return int(count), err
}
