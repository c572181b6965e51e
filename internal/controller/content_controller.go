package controller

import (
	"training_platform_backend/internal/service"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Progression *service.ProgressionService
	Content     *service.ContentService
}

func NewContentController(progression *service.ProgressionService, content *service.ContentService) *ContentController {
	return &ContentController{Progression: progression, Content: content}
}

// OpenContent godoc
// @Summary Open a content item, recording first access
// @Description Fails with 403 when the owning module is locked or the
// @Description previous item in the module has not been started.
// @Tags contents
// @Security BearerAuth
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/contents/{id}/open [post]
func (ctl *ContentController) OpenContent(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	progress, err := ctl.Progression.OpenContent(claims.UserID, util.MustParseUint(c.Param("id")))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, progress)
}

type completeRequest struct {
	Score *int `json:"score"`
}

// CompleteContent godoc
// @Summary Mark a content item completed and run the completion cascade
// @Description Idempotent. Quiz-type items require a passing quiz result
// @Description on record; use the quiz submission flow to produce one.
// @Tags contents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param body body completeRequest false "Optional score to store"
// @Success 200 {object} util.Response{data=service.CascadeResult}
// @Failure 403 {object} util.Response
// @Router /api/contents/{id}/complete [post]
func (ctl *ContentController) CompleteContent(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req completeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.BadRequest(c, err.Error())
			return
		}
	}

	result, err := ctl.Progression.CompleteContent(claims.UserID, util.MustParseUint(c.Param("id")), req.Score, false)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, result)
}

// CreateContent godoc
// @Summary Add a content item to a module (trainer)
// @Tags contents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param body body service.ContentInput true "Content definition"
// @Success 201 {object} util.Response{data=model.ModuleContent}
// @Router /api/trainer/modules/{id}/contents [post]
func (ctl *ContentController) CreateContent(c *gin.Context) {
	var input service.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	content, err := ctl.Content.CreateContent(util.MustParseUint(c.Param("id")), &input)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Created(c, content)
}

// CreateQuiz godoc
// @Summary Attach a quiz definition to a quiz-type content item (trainer)
// @Tags contents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param body body service.QuizInput true "Quiz definition with questions"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/trainer/contents/{id}/quiz [post]
func (ctl *ContentController) CreateQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctl.Content.CreateQuiz(claims.UserID, util.MustParseUint(c.Param("id")), &input)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Created(c, quiz)
}

// UploadFile godoc
// @Summary Upload a file for a content item (trainer)
// @Tags contents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Content ID"
// @Param file formData file true "File to store"
// @Success 200 {object} util.Response{data=model.ModuleContent}
// @Failure 400 {object} util.Response
// @Router /api/trainer/contents/{id}/file [post]
func (ctl *ContentController) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file field is required")
		return
	}

	content, err := ctl.Content.UploadContentFile(util.MustParseUint(c.Param("id")), header)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, content)
}

// RegisterYouTube godoc
// @Summary Attach a YouTube video to a content item by URL (trainer)
// @Tags contents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param body body service.YouTubeInput true "YouTube URL and metadata"
// @Success 201 {object} util.Response{data=model.YouTubeVideo}
// @Failure 400 {object} util.Response
// @Router /api/trainer/contents/{id}/youtube [post]
func (ctl *ContentController) RegisterYouTube(c *gin.Context) {
	var input service.YouTubeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	video, err := ctl.Content.RegisterYouTube(util.MustParseUint(c.Param("id")), &input)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Created(c, video)
}
