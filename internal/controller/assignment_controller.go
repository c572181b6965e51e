package controller

import (
	"training_platform_backend/internal/model"
	"training_platform_backend/internal/service"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Assignments *service.AssignmentService
}

func NewAssignmentController(assignments *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Assignments: assignments}
}

// Create godoc
// @Summary Assign a module to all users, a department, or one user (trainer)
// @Tags assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body model.Assignment true "Assignment payload"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Router /api/trainer/assignments [post]
func (ctl *AssignmentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var a model.Assignment
	if err := c.ShouldBindJSON(&a); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	a.ID = 0
	a.AssignedBy = claims.UserID

	if err := ctl.Assignments.Create(&a); err != nil {
		handleError(c, err)
		return
	}
	util.Created(c, a)
}

// ListMine godoc
// @Summary List assignments targeting the caller
// @Tags assignments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/assignments [get]
func (ctl *AssignmentController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	assignments, err := ctl.Assignments.ListForUser(claims.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, assignments)
}

// ListAll godoc
// @Summary List every assignment (trainer)
// @Tags assignments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/trainer/assignments [get]
func (ctl *AssignmentController) ListAll(c *gin.Context) {
	assignments, err := ctl.Assignments.ListAll()
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, assignments)
}

// Delete godoc
// @Summary Delete an assignment (trainer)
// @Tags assignments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Router /api/trainer/assignments/{id} [delete]
func (ctl *AssignmentController) Delete(c *gin.Context) {
	if err := ctl.Assignments.Delete(util.MustParseUint(c.Param("id"))); err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, nil)
}
