package controller

import (
	"training_platform_backend/internal/service"
	"training_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	Modules *service.ModuleService
	Content *service.ContentService
}

func NewModuleController(modules *service.ModuleService, content *service.ContentService) *ModuleController {
	return &ModuleController{Modules: modules, Content: content}
}

// ListModules godoc
// @Summary List modules with the caller's progress and lock state
// @Tags modules
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ModuleListItem}
// @Router /api/modules [get]
func (ctl *ModuleController) ListModules(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	items, err := ctl.Modules.ListModules(claims.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, items)
}

// GetModule godoc
// @Summary Get one module's detail for the caller
// @Description A locked module is returned with access=false, its
// @Description prerequisite's progress, and no contents.
// @Tags modules
// @Security BearerAuth
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response{data=service.ModuleDetail}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (ctl *ModuleController) GetModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	detail, err := ctl.Modules.GetModule(claims.UserID, util.MustParseUint(c.Param("id")))
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, detail)
}

// CreateModule godoc
// @Summary Create a module (trainer)
// @Tags modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.ModuleInput true "Module definition"
// @Success 201 {object} util.Response{data=model.TrainingModule}
// @Failure 400 {object} util.Response
// @Router /api/trainer/modules [post]
func (ctl *ModuleController) CreateModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.ModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	module, err := ctl.Content.CreateModule(claims.UserID, &input)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Created(c, module)
}

type prerequisiteRequest struct {
	PrerequisiteModuleID *uint `json:"prerequisiteModuleId"`
}

// UpdatePrerequisite godoc
// @Summary Change a module's prerequisite (trainer)
// @Tags modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param body body prerequisiteRequest true "New prerequisite, null to clear"
// @Success 200 {object} util.Response{data=model.TrainingModule}
// @Router /api/trainer/modules/{id}/prerequisite [put]
func (ctl *ModuleController) UpdatePrerequisite(c *gin.Context) {
	var req prerequisiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	module, err := ctl.Content.UpdatePrerequisite(util.MustParseUint(c.Param("id")), req.PrerequisiteModuleID)
	if err != nil {
		handleError(c, err)
		return
	}
	util.Success(c, module)
}
