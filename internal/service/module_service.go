package service

import (
	"errors"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/repository"
	"training_platform_backend/internal/util"

	"gorm.io/gorm"
)

// ModuleService assembles the learner-facing module views on top of the
// progression engine. It never caches lock verdicts itself; every read
// goes through the evaluator.
type ModuleService struct {
	Modules     *repository.ModuleRepository
	Progression *ProgressionService
}

func NewModuleService(modules *repository.ModuleRepository, progression *ProgressionService) *ModuleService {
	return &ModuleService{Modules: modules, Progression: progression}
}

// ModuleListItem is one row of the module overview.
type ModuleListItem struct {
	model.TrainingModule
	CompletionPercentage int  `json:"completionPercentage"`
	IsCompleted          bool `json:"isCompleted"`
	IsLocked             bool `json:"isLocked"`
}

func (s *ModuleService) ListModules(userID uint) ([]ModuleListItem, error) {
	modules, err := s.Modules.ListActive()
	if err != nil {
		return nil, err
	}

	items := make([]ModuleListItem, len(modules))
	for i := range modules {
		m := modules[i]

		summary, err := s.Progression.Summary(userID, m.ID)
		if err != nil {
			return nil, err
		}

		locked, _, err := s.Progression.IsLocked(userID, &m)
		if err != nil {
			return nil, err
		}

		items[i] = ModuleListItem{
			TrainingModule:       m,
			CompletionPercentage: summary.CompletionPercentage,
			IsCompleted:          summary.IsCompleted,
			IsLocked:             locked,
		}
	}
	return items, nil
}

// ContentView is a content item with the user's progress and the
// sequencer's verdict attached.
type ContentView struct {
	model.ModuleContent
	UserProgress *model.UserProgress `json:"userProgress,omitempty"`
	Accessible   bool                `json:"accessible"`
}

// PrerequisiteInfo describes why a module is locked.
type PrerequisiteInfo struct {
	ModuleID         uint   `json:"id"`
	Title            string `json:"title"`
	ContentCompleted int    `json:"content_completed"`
	ContentCount     int    `json:"content_count"`
	QuizPassed       bool   `json:"quiz_passed"`
	QuizCount        int    `json:"quiz_count"`
}

// ModuleDetail is the full module page payload.
type ModuleDetail struct {
	Module       *model.TrainingModule `json:"module"`
	Access       bool                  `json:"access"`
	Prerequisite *PrerequisiteInfo     `json:"incompletePrerequisite,omitempty"`
	Contents     []ContentView         `json:"contents,omitempty"`
	Summary      *model.ModuleSummary  `json:"completionStatus,omitempty"`
	NextModuleID *uint                 `json:"nextModuleId,omitempty"`
}

// GetModule returns the module detail for a user. A locked module comes
// back with access=false and the prerequisite's progress, without its
// contents.
func (s *ModuleService) GetModule(userID, moduleID uint) (*ModuleDetail, error) {
	module, err := s.Modules.FindByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	// Contents are delivered as ContentView entries below.
	module.Contents = nil

	locked, prereqSummary, err := s.Progression.IsLocked(userID, module)
	if err != nil {
		return nil, err
	}

	if locked {
		detail := &ModuleDetail{Module: module, Access: false}
		if prereqSummary != nil {
			info := &PrerequisiteInfo{
				ModuleID:         prereqSummary.ModuleID,
				ContentCompleted: prereqSummary.ContentCompleted,
				ContentCount:     prereqSummary.ContentCount,
				QuizPassed:       prereqSummary.QuizPassed,
				QuizCount:        prereqSummary.QuizCount,
			}
			if prereq, err := s.Modules.FindByID(prereqSummary.ModuleID); err == nil {
				info.Title = prereq.Title
			}
			detail.Prerequisite = info
		}
		return detail, nil
	}

	contents, progress, access, err := s.Progression.Accessibility(userID, moduleID)
	if err != nil {
		return nil, err
	}

	views := make([]ContentView, len(contents))
	for i := range contents {
		views[i] = ContentView{
			ModuleContent: contents[i],
			UserProgress:  progress[contents[i].ID],
			Accessible:    access[i],
		}
	}

	summary, err := s.Progression.Summary(userID, moduleID)
	if err != nil {
		return nil, err
	}

	detail := &ModuleDetail{
		Module:   module,
		Access:   true,
		Contents: views,
		Summary:  summary,
	}

	if next, err := s.Modules.NextModule(module); err == nil && next != nil {
		id := next.ID
		detail.NextModuleID = &id
	}

	return detail, nil
}
