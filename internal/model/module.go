package model

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentDocument ContentType = "document"
	ContentHTML     ContentType = "html"
	ContentQuiz     ContentType = "quiz"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// TrainingModule is an ordered unit of training content. Access to it is
// gated on completion of its prerequisite module, if any.
// swagger:model TrainingModule
type TrainingModule struct {
	BaseModel
	Title                string          `gorm:"size:255;not null" json:"title"`
	Description          string          `gorm:"type:text" json:"description"`
	Category             string          `gorm:"size:100" json:"category"`
	Difficulty           Difficulty      `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"difficultyLevel"`
	EstimatedDuration    int             `gorm:"default:0" json:"estimatedDuration"` // minutes
	DisplayOrder         int             `gorm:"default:0;index" json:"displayOrder"`
	PrerequisiteModuleID *uint           `gorm:"index" json:"prerequisiteModuleId,omitempty"`
	IsActive             bool            `gorm:"default:true" json:"isActive"`
	CreatedBy            uint            `gorm:"index" json:"createdBy"`
	Contents             []ModuleContent `gorm:"foreignKey:ModuleID" json:"contents,omitempty"`
}

func (TrainingModule) TableName() string {
	return "training_modules"
}

// swagger:model ModuleContent
type ModuleContent struct {
	BaseModel
	ModuleID       uint          `gorm:"uniqueIndex:idx_module_order;not null" json:"moduleId"`
	ContentType    ContentType   `gorm:"type:enum('video','document','html','quiz');not null" json:"contentType"`
	Title          string        `gorm:"size:255;not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	URL            string        `gorm:"size:512" json:"url,omitempty"`
	FilePath       string        `gorm:"size:512" json:"filePath,omitempty"`
	Duration       int           `gorm:"default:0" json:"duration"` // seconds
	DisplayOrder   int           `gorm:"uniqueIndex:idx_module_order;default:0" json:"displayOrder"`
	IsDownloadable bool          `gorm:"default:false" json:"isDownloadable"`
	YouTubeVideo   *YouTubeVideo `gorm:"foreignKey:ContentID" json:"youtubeVideo,omitempty"`
}

func (c *ModuleContent) IsQuiz() bool {
	return c.ContentType == ContentQuiz
}

func (ModuleContent) TableName() string {
	return "module_contents"
}

// swagger:model YouTubeVideo
type YouTubeVideo struct {
	BaseModel
	ContentID      uint   `gorm:"index;not null" json:"contentId"`
	YouTubeVideoID string `gorm:"size:20;not null" json:"youtubeVideoId"`
	Title          string `gorm:"size:255" json:"title"`
	ChannelName    string `gorm:"size:255" json:"channelName,omitempty"`
	Duration       int    `gorm:"default:0" json:"duration"`
	ThumbnailURL   string `gorm:"size:512" json:"thumbnailUrl,omitempty"`
}

func (YouTubeVideo) TableName() string {
	return "youtube_videos"
}

// ModuleSummary is the derived per-user progress view of one module. It is
// always recomputed from progress rows and quiz results, never stored.
// swagger:model ModuleSummary
type ModuleSummary struct {
	ModuleID             uint `json:"moduleId"`
	ContentCount         int  `json:"content_count"`
	ContentCompleted     int  `json:"content_completed"`
	QuizCount            int  `json:"quiz_count"`
	QuizPassed           bool `json:"quiz_passed"`
	CompletionPercentage int  `json:"completion_percentage"`
	IsCompleted          bool `json:"is_completed"`
}
