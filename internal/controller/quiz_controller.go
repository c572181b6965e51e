package controller

import (
	"training_platform_backend/internal/service"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Quizzes *service.QuizService
}

func NewQuizController(quizzes *service.QuizService) *QuizController {
	return &QuizController{Quizzes: quizzes}
}

// OpenSession godoc
// @Summary Start a quiz session for a content item
// @Description One active session per user and content item; a second open
// @Description while one is in flight returns 409.
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/contents/{id}/quiz/session [post]
func (ctl *QuizController) OpenSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	view, err := ctl.Quizzes.OpenSession(claims.UserID, util.MustParseUint(c.Param("id")))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, view)
}

// GetSession godoc
// @Summary Get the current state of a quiz session
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz-sessions/{sessionId} [get]
func (ctl *QuizController) GetSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	view, err := ctl.Quizzes.GetSession(claims.UserID, c.Param("sessionId"))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, view)
}

type answerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// SetAnswer godoc
// @Summary Record or change an answer in an in-progress session
// @Tags quizzes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param body body answerRequest true "Question and answer"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/quiz-sessions/{sessionId}/answer [put]
func (ctl *QuizController) SetAnswer(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Quizzes.SetAnswer(claims.UserID, c.Param("sessionId"), req.QuestionID, req.Answer); err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, nil)
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// Navigate godoc
// @Summary Move the session cursor to the next or previous question
// @Tags quizzes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param body body navigateRequest true "Direction: next or previous"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response
// @Router /api/quiz-sessions/{sessionId}/navigate [post]
func (ctl *QuizController) Navigate(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	view, err := ctl.Quizzes.Navigate(claims.UserID, c.Param("sessionId"), req.Direction)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, view)
}

// Submit godoc
// @Summary Score the session and persist the result
// @Description Submitting twice returns 409. A passing result marks the
// @Description content item completed and runs the module cascade.
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 409 {object} util.Response
// @Router /api/quiz-sessions/{sessionId}/submit [post]
func (ctl *QuizController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	result, err := ctl.Quizzes.Submit(claims.UserID, c.Param("sessionId"))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, result)
}

// Retry godoc
// @Summary Reopen a failed session with cleared answers
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 409 {object} util.Response
// @Router /api/quiz-sessions/{sessionId}/retry [post]
func (ctl *QuizController) Retry(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	view, err := ctl.Quizzes.Retry(claims.UserID, c.Param("sessionId"))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, view)
}

// CloseSession godoc
// @Summary Discard a session in any state
// @Tags quizzes
// @Security BearerAuth
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{sessionId} [delete]
func (ctl *QuizController) CloseSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctl.Quizzes.CloseSession(claims.UserID, c.Param("sessionId")); err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, nil)
}
