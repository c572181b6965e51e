package service

import (
	"training_platform_backend/internal/model"
)

// ModuleLocked decides whether a module is locked for a user, given the
// derived progress summary of its prerequisite module.
//
// A module with no prerequisite is never locked. Otherwise it stays locked
// until every content item of the prerequisite is completed AND, when the
// prerequisite carries quizzes, all of them have been passed. A
// prerequisite with zero content items counts as vacuously complete.
//
// Pure function of its inputs; every caller that needs a lock verdict goes
// through here so the rule is never recomputed divergently.
func ModuleLocked(m *model.TrainingModule, prereq *model.ModuleSummary) bool {
	if m.PrerequisiteModuleID == nil {
		return false
	}
	if prereq == nil {
		// Prerequisite exists but no summary could be derived; stay locked.
		return true
	}
	if prereq.ContentCompleted < prereq.ContentCount {
		return true
	}
	if prereq.QuizCount > 0 && !prereq.QuizPassed {
		return true
	}
	return false
}
