package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/util"
	"training_platform_backend/pkg/logger"
	"training_platform_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Stores the progression engine reads and writes. Declared here, on the
// consumer side, so the cascade is testable without a database; the gorm
// repositories satisfy them.
type ModuleStore interface {
	FindByID(id uint) (*model.TrainingModule, error)
	FindContent(id uint) (*model.ModuleContent, error)
	ModuleContents(moduleID uint) ([]model.ModuleContent, error)
	NextModule(current *model.TrainingModule) (*model.TrainingModule, error)
	Dependents(moduleID uint) ([]model.TrainingModule, error)
}

type ProgressStore interface {
	MapForContents(userID uint, contentIDs []uint) (map[uint]*model.UserProgress, error)
	Touch(userID, contentID uint) (*model.UserProgress, error)
	MarkCompleted(userID, contentID uint, score *int) (alreadyCompleted bool, err error)
	IncrementAttempts(userID, contentID uint) error
}

type QuizResultStore interface {
	HasPassedForContent(userID, contentID uint) (bool, error)
}

type PointsLedger interface {
	AddPoints(userID uint, points int, reason string) error
}

// ProgressionService owns the derived module state: lock verdicts,
// per-item accessibility, progress summaries, and the completion cascade.
type ProgressionService struct {
	Modules     ModuleStore
	Progress    ProgressStore
	QuizResults QuizResultStore
	Points      PointsLedger
	Redis       *redis.Client
}

func NewProgressionService(
	modules ModuleStore,
	progress ProgressStore,
	quizResults QuizResultStore,
	points PointsLedger,
	rdb *redis.Client,
) *ProgressionService {
	return &ProgressionService{
		Modules:     modules,
		Progress:    progress,
		QuizResults: quizResults,
		Points:      points,
		Redis:       rdb,
	}
}

const summaryCacheTTL = 5 * time.Minute

func summaryCacheKey(userID, moduleID uint) string {
	return fmt.Sprintf("progress:summary:%d:%d", userID, moduleID)
}

// Summary recomputes the derived progress view of a module for one user.
// The result is cached briefly in redis and invalidated whenever the
// cascade records a completion, so the next lock evaluation of a dependent
// module always reflects the updated state.
func (s *ProgressionService) Summary(userID, moduleID uint) (*model.ModuleSummary, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, summaryCacheKey(userID, moduleID)).Result(); err == nil {
			var summary model.ModuleSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	contents, err := s.Modules.ModuleContents(moduleID)
	if err != nil {
		return nil, err
	}

	contentIDs := make([]uint, len(contents))
	for i := range contents {
		contentIDs[i] = contents[i].ID
	}

	progress, err := s.Progress.MapForContents(userID, contentIDs)
	if err != nil {
		return nil, err
	}

	summary := &model.ModuleSummary{ModuleID: moduleID, ContentCount: len(contents)}
	summary.QuizPassed = true
	for i := range contents {
		c := &contents[i]
		if p := progress[c.ID]; p != nil && p.Status == model.Completed {
			summary.ContentCompleted++
		}
		if c.IsQuiz() {
			summary.QuizCount++
			passed, err := s.QuizResults.HasPassedForContent(userID, c.ID)
			if err != nil {
				return nil, err
			}
			if !passed {
				summary.QuizPassed = false
			}
		}
	}

	if summary.ContentCount > 0 {
		summary.CompletionPercentage = summary.ContentCompleted * 100 / summary.ContentCount
	}
	// Zero content counts as vacuously complete.
	summary.IsCompleted = summary.ContentCompleted == summary.ContentCount &&
		(summary.QuizCount == 0 || summary.QuizPassed)

	if s.Redis != nil {
		if b, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, summaryCacheKey(userID, moduleID), b, summaryCacheTTL)
		}
	}

	return summary, nil
}

func (s *ProgressionService) invalidateSummary(userID, moduleID uint) {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), summaryCacheKey(userID, moduleID))
	}
}

// IsLocked evaluates the module lock rule for a user and returns the
// prerequisite summary the verdict was based on (nil when there is no
// prerequisite).
func (s *ProgressionService) IsLocked(userID uint, m *model.TrainingModule) (bool, *model.ModuleSummary, error) {
	if m.PrerequisiteModuleID == nil {
		return false, nil, nil
	}
	prereq, err := s.Summary(userID, *m.PrerequisiteModuleID)
	if err != nil {
		return true, nil, err
	}
	return ModuleLocked(m, prereq), prereq, nil
}

// Accessibility returns the module's contents in order, the user's
// progress rows for them, and the sequencer's per-item verdicts.
func (s *ProgressionService) Accessibility(userID, moduleID uint) ([]model.ModuleContent, map[uint]*model.UserProgress, []bool, error) {
	contents, err := s.Modules.ModuleContents(moduleID)
	if err != nil {
		return nil, nil, nil, err
	}

	contentIDs := make([]uint, len(contents))
	for i := range contents {
		contentIDs[i] = contents[i].ID
	}

	progress, err := s.Progress.MapForContents(userID, contentIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	return contents, progress, ContentAccessibility(contents, progress), nil
}

// OpenContent records that the learner opened a content item, creating the
// progress row on first access. Both gates apply: the owning module must
// be unlocked and the item itself reachable per the sequencer.
func (s *ProgressionService) OpenContent(userID, contentID uint) (*model.UserProgress, error) {
	content, err := s.Modules.FindContent(contentID)
	if err != nil {
		return nil, err
	}

	module, err := s.Modules.FindByID(content.ModuleID)
	if err != nil {
		return nil, err
	}

	locked, _, err := s.IsLocked(userID, module)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, util.ErrModuleLocked
	}

	contents, _, access, err := s.Accessibility(userID, module.ID)
	if err != nil {
		return nil, err
	}
	for i := range contents {
		if contents[i].ID == contentID {
			if !access[i] {
				return nil, util.ErrContentLocked
			}
			break
		}
	}

	return s.Progress.Touch(userID, contentID)
}

// CascadeResult reports what one completion did to the derived state.
type CascadeResult struct {
	ContentID            uint   `json:"contentId"`
	ModuleID             uint   `json:"moduleId"`
	AlreadyCompleted     bool   `json:"alreadyCompleted"`
	PointsAwarded        int    `json:"pointsAwarded"`
	CompletionPercentage int    `json:"completionPercentage"`
	ModuleCompleted      bool   `json:"moduleCompleted"`
	ModuleCompletedNow   bool   `json:"moduleCompletedNow"`
	NextModuleID         *uint  `json:"nextModuleId,omitempty"`
	UnlockedModuleIDs    []uint `json:"unlockedModuleIds,omitempty"`
}

// CompleteContent runs the completion cascade for one content item:
// record the progress transition, recompute the owning module's summary,
// and, when the module newly completed, surface the modules this unlocks.
//
// quizPassed must be true when the content is quiz-type; a failed attempt
// never marks a quiz item completed. When the caller cannot vouch for a
// pass (e.g. a plain completion request against a quiz item), the stored
// results are checked instead.
//
// Failures after the progress write do not roll it back; the derived
// recomputation is deferred to the next read.
func (s *ProgressionService) CompleteContent(userID, contentID uint, score *int, quizPassed bool) (*CascadeResult, error) {
	content, err := s.Modules.FindContent(contentID)
	if err != nil {
		return nil, err
	}

	if content.IsQuiz() && !quizPassed {
		passed, err := s.QuizResults.HasPassedForContent(userID, contentID)
		if err != nil {
			return nil, err
		}
		if !passed {
			return nil, util.ErrQuizNotPassed
		}
	}

	result := &CascadeResult{ContentID: contentID, ModuleID: content.ModuleID}

	alreadyCompleted, err := s.Progress.MarkCompleted(userID, contentID, score)
	if err != nil {
		return nil, err
	}
	result.AlreadyCompleted = alreadyCompleted

	s.invalidateSummary(userID, content.ModuleID)

	if !alreadyCompleted {
		result.PointsAwarded += util.PointsForContent
	}

	summary, err := s.Summary(userID, content.ModuleID)
	if err != nil {
		// The progress write stands; derived state catches up on next read.
		logger.Log.Warn("completion recorded but summary recompute failed",
			zap.Uint("userId", userID), zap.Uint("contentId", contentID), zap.Error(err))
		s.awardPoints(userID, result.PointsAwarded, fmt.Sprintf("Completed content %d", contentID))
		return result, nil
	}

	result.CompletionPercentage = summary.CompletionPercentage
	result.ModuleCompleted = summary.IsCompleted
	// This call flipped a content item to completed, so the module could
	// not have been complete before it.
	result.ModuleCompletedNow = summary.IsCompleted && !alreadyCompleted

	if result.ModuleCompletedNow {
		result.PointsAwarded += util.PointsForModule
		monitoring.ModulesCompleted.Inc()

		module, err := s.Modules.FindByID(content.ModuleID)
		if err == nil {
			if next, err := s.Modules.NextModule(module); err == nil && next != nil {
				id := next.ID
				result.NextModuleID = &id
			}
		}

		dependents, err := s.Modules.Dependents(content.ModuleID)
		if err == nil {
			for i := range dependents {
				if !ModuleLocked(&dependents[i], summary) {
					result.UnlockedModuleIDs = append(result.UnlockedModuleIDs, dependents[i].ID)
				}
			}
		}
	}

	if result.PointsAwarded > 0 {
		s.awardPoints(userID, result.PointsAwarded, fmt.Sprintf("Completed content %d", contentID))
	}

	return result, nil
}

func (s *ProgressionService) awardPoints(userID uint, points int, reason string) {
	if s.Points == nil || points <= 0 {
		return
	}
	if err := s.Points.AddPoints(userID, points, reason); err != nil {
		logger.Log.Warn("failed to award points", zap.Uint("userId", userID), zap.Error(err))
	}
}
