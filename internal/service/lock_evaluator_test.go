package service

import (
	"testing"
	"training_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func moduleWithPrereq(prereqID uint) *model.TrainingModule {
	m := &model.TrainingModule{Title: "Food Safety II"}
	m.ID = 2
	m.PrerequisiteModuleID = &prereqID
	return m
}

func TestModuleLocked(t *testing.T) {
	tests := []struct {
		name   string
		module *model.TrainingModule
		prereq *model.ModuleSummary
		locked bool
	}{
		{
			name:   "no prerequisite never locks",
			module: &model.TrainingModule{Title: "Orientation"},
			prereq: nil,
			locked: false,
		},
		{
			name:   "prerequisite with missing summary stays locked",
			module: moduleWithPrereq(1),
			prereq: nil,
			locked: true,
		},
		{
			name:   "incomplete content locks",
			module: moduleWithPrereq(1),
			prereq: &model.ModuleSummary{ModuleID: 1, ContentCount: 3, ContentCompleted: 2, QuizCount: 0, QuizPassed: true},
			locked: true,
		},
		{
			name:   "all content done, quiz not passed locks",
			module: moduleWithPrereq(1),
			prereq: &model.ModuleSummary{ModuleID: 1, ContentCount: 3, ContentCompleted: 3, QuizCount: 1, QuizPassed: false},
			locked: true,
		},
		{
			name:   "all content done, quiz passed unlocks",
			module: moduleWithPrereq(1),
			prereq: &model.ModuleSummary{ModuleID: 1, ContentCount: 3, ContentCompleted: 3, QuizCount: 1, QuizPassed: true},
			locked: false,
		},
		{
			name:   "all content done, no quizzes unlocks",
			module: moduleWithPrereq(1),
			prereq: &model.ModuleSummary{ModuleID: 1, ContentCount: 2, ContentCompleted: 2, QuizCount: 0, QuizPassed: false},
			locked: false,
		},
		{
			name:   "empty prerequisite is vacuously complete",
			module: moduleWithPrereq(1),
			prereq: &model.ModuleSummary{ModuleID: 1, ContentCount: 0, ContentCompleted: 0, QuizCount: 0, QuizPassed: true},
			locked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, ModuleLocked(tt.module, tt.prereq))
		})
	}
}
