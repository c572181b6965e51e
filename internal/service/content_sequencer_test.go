package service

import (
	"testing"
	"training_platform_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func contentItems(ids ...uint) []model.ModuleContent {
	contents := make([]model.ModuleContent, len(ids))
	for i, id := range ids {
		contents[i].ID = id
		contents[i].DisplayOrder = i
	}
	return contents
}

func TestContentAccessibility(t *testing.T) {
	contents := contentItems(10, 11, 12)

	tests := []struct {
		name     string
		progress map[uint]*model.UserProgress
		want     []bool
	}{
		{
			name:     "fresh module only exposes the first item",
			progress: map[uint]*model.UserProgress{},
			want:     []bool{true, false, false},
		},
		{
			name: "starting an item unlocks the next, completion not required",
			progress: map[uint]*model.UserProgress{
				10: {Status: model.InProgress},
			},
			want: []bool{true, true, false},
		},
		{
			name: "completed counts as started",
			progress: map[uint]*model.UserProgress{
				10: {Status: model.Completed},
				11: {Status: model.InProgress},
			},
			want: []bool{true, true, true},
		},
		{
			name: "not_started row does not unlock the next item",
			progress: map[uint]*model.UserProgress{
				10: {Status: model.NotStarted},
			},
			want: []bool{true, false, false},
		},
		{
			name: "later progress does not retroactively gate earlier items",
			progress: map[uint]*model.UserProgress{
				11: {Status: model.Completed},
			},
			want: []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentAccessibility(contents, tt.progress))
		})
	}
}

func TestContentAccessibilityEmpty(t *testing.T) {
	assert.Empty(t, ContentAccessibility(nil, nil))
}

func TestContentAccessibilitySingleItem(t *testing.T) {
	access := ContentAccessibility(contentItems(7), nil)
	assert.Equal(t, []bool{true}, access)
}
