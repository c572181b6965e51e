package repository

import (
	"training_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.TrainingModule) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) Save(m *model.TrainingModule) error {
	return r.DB.Save(m).Error
}

// FindByID loads a module with its contents in display order.
func (r *ModuleRepository) FindByID(id uint) (*model.TrainingModule, error) {
	var m model.TrainingModule
	err := r.DB.
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Preload("Contents.YouTubeVideo").
		Where("is_active = ?", true).
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActive returns active modules in display order, without contents.
func (r *ModuleRepository) ListActive() ([]model.TrainingModule, error) {
	var modules []model.TrainingModule
	err := r.DB.
		Where("is_active = ?", true).
		Order("display_order asc, id asc").
		Find(&modules).Error
	return modules, err
}

// NextModule returns the module ordered immediately after the given one,
// or nil when it is the last.
func (r *ModuleRepository) NextModule(current *model.TrainingModule) (*model.TrainingModule, error) {
	var next model.TrainingModule
	err := r.DB.
		Where("is_active = ? AND (display_order > ? OR (display_order = ? AND id > ?))",
			true, current.DisplayOrder, current.DisplayOrder, current.ID).
		Order("display_order asc, id asc").
		First(&next).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// Dependents lists active modules whose prerequisite is the given module.
func (r *ModuleRepository) Dependents(moduleID uint) ([]model.TrainingModule, error) {
	var modules []model.TrainingModule
	err := r.DB.
		Where("is_active = ? AND prerequisite_module_id = ?", true, moduleID).
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CreateContent(c *model.ModuleContent) error {
	return r.DB.Create(c).Error
}

func (r *ModuleRepository) SaveContent(c *model.ModuleContent) error {
	return r.DB.Save(c).Error
}

func (r *ModuleRepository) FindContent(id uint) (*model.ModuleContent, error) {
	var c model.ModuleContent
	err := r.DB.Preload("YouTubeVideo").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ModuleContents returns a module's contents in display order.
func (r *ModuleRepository) ModuleContents(moduleID uint) ([]model.ModuleContent, error) {
	var contents []model.ModuleContent
	err := r.DB.
		Where("module_id = ?", moduleID).
		Order("display_order asc").
		Find(&contents).Error
	return contents, err
}

func (r *ModuleRepository) CreateYouTubeVideo(v *model.YouTubeVideo) error {
	return r.DB.Create(v).Error
}
