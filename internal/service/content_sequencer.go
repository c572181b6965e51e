package service

import (
	"training_platform_backend/internal/model"
)

// ContentAccessibility computes, for a module's contents in display order,
// whether each item is reachable. The first item is always accessible;
// item k is accessible once item k-1 has been started (status other than
// not_started). Starting is enough on purpose: sequencing inside a module
// is a soft gate, unlike the hard quiz-pass gate applied between modules.
// Do not tighten this to "completed" — it changes user-visible unlock
// timing.
func ContentAccessibility(contents []model.ModuleContent, progress map[uint]*model.UserProgress) []bool {
	access := make([]bool, len(contents))
	for i := range contents {
		if i == 0 {
			access[i] = true
			continue
		}
		access[i] = progress[contents[i-1].ID].Started()
	}
	return access
}
