package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/repository"
	"training_platform_backend/internal/util"
	"training_platform_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentService is the trainer-facing authoring surface: modules, content
// items, quiz definitions, file uploads, and YouTube registrations.
type ContentService struct {
	Modules *repository.ModuleRepository
	Quizzes *repository.QuizRepository
	Storage *StorageService
}

func NewContentService(modules *repository.ModuleRepository, quizzes *repository.QuizRepository, storage *StorageService) *ContentService {
	return &ContentService{Modules: modules, Quizzes: quizzes, Storage: storage}
}

type ModuleInput struct {
	Title                string           `json:"title" binding:"required"`
	Description          string           `json:"description"`
	Category             string           `json:"category"`
	Difficulty           model.Difficulty `json:"difficultyLevel"`
	EstimatedDuration    int              `json:"estimatedDuration"`
	DisplayOrder         int              `json:"displayOrder"`
	PrerequisiteModuleID *uint            `json:"prerequisiteModuleId"`
}

// CreateModule persists a new module. The prerequisite, when given, must
// reference an existing active module and must not be the module itself
// (a self reference would lock it forever).
func (s *ContentService) CreateModule(createdBy uint, input *ModuleInput) (*model.TrainingModule, error) {
	if input.PrerequisiteModuleID != nil {
		if _, err := s.Modules.FindByID(*input.PrerequisiteModuleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.Validation(errors.New("prerequisite module does not exist"))
			}
			return nil, err
		}
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = model.Beginner
	}

	module := &model.TrainingModule{
		Title:                input.Title,
		Description:          input.Description,
		Category:             input.Category,
		Difficulty:           difficulty,
		EstimatedDuration:    input.EstimatedDuration,
		DisplayOrder:         input.DisplayOrder,
		PrerequisiteModuleID: input.PrerequisiteModuleID,
		IsActive:             true,
		CreatedBy:            createdBy,
	}
	if err := s.Modules.Create(module); err != nil {
		return nil, err
	}

	logger.Log.Info("module created", zap.Uint("moduleId", module.ID), zap.String("title", module.Title))
	return module, nil
}

// UpdatePrerequisite rewires a module's prerequisite. Passing nil clears it.
func (s *ContentService) UpdatePrerequisite(moduleID uint, prerequisiteID *uint) (*model.TrainingModule, error) {
	module, err := s.Modules.FindByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	if prerequisiteID != nil {
		if *prerequisiteID == moduleID {
			return nil, util.Validation(errors.New("module cannot be its own prerequisite"))
		}
		if _, err := s.Modules.FindByID(*prerequisiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.Validation(errors.New("prerequisite module does not exist"))
			}
			return nil, err
		}
	}

	module.PrerequisiteModuleID = prerequisiteID
	module.Contents = nil
	if err := s.Modules.Save(module); err != nil {
		return nil, err
	}
	return module, nil
}

type ContentInput struct {
	ContentType    model.ContentType `json:"contentType" binding:"required"`
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description"`
	URL            string            `json:"url"`
	Duration       int               `json:"duration"`
	DisplayOrder   int               `json:"displayOrder"`
	IsDownloadable bool              `json:"isDownloadable"`
}

// CreateContent appends a content item to a module. Display order defaults
// to the end of the module when not given.
func (s *ContentService) CreateContent(moduleID uint, input *ContentInput) (*model.ModuleContent, error) {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	switch input.ContentType {
	case model.ContentVideo, model.ContentDocument, model.ContentHTML, model.ContentQuiz:
	default:
		return nil, util.Validation(fmt.Errorf("unknown content type: %s", input.ContentType))
	}

	order := input.DisplayOrder
	if order == 0 {
		existing, err := s.Modules.ModuleContents(moduleID)
		if err != nil {
			return nil, err
		}
		for i := range existing {
			if existing[i].DisplayOrder >= order {
				order = existing[i].DisplayOrder + 1
			}
		}
	}

	content := &model.ModuleContent{
		ModuleID:       moduleID,
		ContentType:    input.ContentType,
		Title:          input.Title,
		Description:    input.Description,
		URL:            input.URL,
		Duration:       input.Duration,
		DisplayOrder:   order,
		IsDownloadable: input.IsDownloadable,
	}
	if err := s.Modules.CreateContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

type QuizInput struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	PassingScore int             `json:"passingScore"`
	TimeLimit    int             `json:"timeLimit"`
	Questions    []QuestionInput `json:"questions" binding:"required"`
}

type QuestionInput struct {
	QuestionText  string             `json:"questionText" binding:"required"`
	QuestionType  model.QuestionType `json:"questionType" binding:"required"`
	Options       []string           `json:"options"`
	CorrectAnswer string             `json:"correctAnswer" binding:"required"`
	Points        int                `json:"points"`
}

// CreateQuiz attaches a quiz definition to a quiz-type content item. The
// model's Validate rejects malformed questions before anything is stored.
func (s *ContentService) CreateQuiz(createdBy, contentID uint, input *QuizInput) (*model.Quiz, error) {
	content, err := s.Modules.FindContent(contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !content.IsQuiz() {
		return nil, util.Validation(errors.New("content item is not quiz-type"))
	}

	passingScore := input.PassingScore
	if passingScore == 0 {
		passingScore = 70
	}

	quiz := &model.Quiz{
		ContentID:    contentID,
		Title:        input.Title,
		Description:  input.Description,
		PassingScore: passingScore,
		TimeLimit:    input.TimeLimit,
		IsActive:     true,
		CreatedBy:    createdBy,
		Questions:    make([]model.QuizQuestion, len(input.Questions)),
	}
	for i, q := range input.Questions {
		points := q.Points
		if points == 0 {
			points = 1
		}
		quiz.Questions[i] = model.QuizQuestion{
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			DisplayOrder:  i,
		}
	}

	if err := s.Quizzes.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// UploadContentFile stores an uploaded file against a content item. Videos
// are probed for duration after upload; probe failures are logged and the
// duration left at zero.
func (s *ContentService) UploadContentFile(contentID uint, header *multipart.FileHeader) (*model.ModuleContent, error) {
	content, err := s.Modules.FindContent(contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	allowed := []string{util.MimeVideo, util.MimeImage, util.MimePDF, "text/"}
	mimeType, err := util.ValidateMimeType(file, allowed)
	if err != nil {
		return nil, util.Validation(err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%d/%s%s", contentID, uuid.NewString(), filepath.Ext(header.Filename))
	url, err := s.Storage.Provider.Upload(context.Background(), filename, file, header.Size, mimeType)
	if err != nil {
		return nil, err
	}

	content.FilePath = filename
	content.URL = url

	if util.IsVideo(mimeType) {
		if info, err := s.probeVideo(file, header.Filename); err != nil {
			logger.Log.Warn("video probe failed", zap.Uint("contentId", contentID), zap.Error(err))
		} else {
			content.Duration = int(info.Duration)
		}
	}

	if err := s.Modules.SaveContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

// probeVideo writes the upload to a temp file so ffprobe can read it.
func (s *ContentService) probeVideo(file multipart.File, originalName string) (*util.VideoInfo, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "probe-*"+filepath.Ext(originalName))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, err
	}
	return util.GetVideoInfo(tmp.Name())
}

type YouTubeInput struct {
	URL         string `json:"url" binding:"required"`
	Title       string `json:"title"`
	ChannelName string `json:"channelName"`
	Duration    int    `json:"duration"`
	Thumbnail   string `json:"thumbnailUrl"`
}

// RegisterYouTube attaches a YouTube video to a content item by URL.
func (s *ContentService) RegisterYouTube(contentID uint, input *YouTubeInput) (*model.YouTubeVideo, error) {
	content, err := s.Modules.FindContent(contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	videoID := util.ExtractYouTubeID(input.URL)
	if videoID == "" {
		return nil, util.Validation(errors.New("could not extract a YouTube video id from the URL"))
	}

	video := &model.YouTubeVideo{
		ContentID:      content.ID,
		YouTubeVideoID: videoID,
		Title:          input.Title,
		ChannelName:    input.ChannelName,
		Duration:       input.Duration,
		ThumbnailURL:   input.Thumbnail,
	}
	if err := s.Modules.CreateYouTubeVideo(video); err != nil {
		return nil, err
	}

	content.URL = "https://www.youtube.com/watch?v=" + videoID
	if input.Duration > 0 {
		content.Duration = input.Duration
	}
	if err := s.Modules.SaveContent(content); err != nil {
		logger.Log.Warn("youtube registered but content row update failed",
			zap.Uint("contentId", contentID), zap.Error(err))
	}

	return video, nil
}
