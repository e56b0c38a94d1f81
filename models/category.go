package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a catalog category. Products reference it by Slug.
type Category struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey" db:"id"`
	Name        string     `json:"name" gorm:"not null" db:"name"`
	Slug        string     `json:"slug" gorm:"not null;uniqueIndex" db:"slug"`
	Description string     `json:"description" gorm:"not null;default:''" db:"description"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'Active';check:status IN ('Active', 'Inactive')" db:"status"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index" db:"parent_id"`
	ParentName  *string    `json:"parent_name" gorm:"type:text" db:"parent_name"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime" db:"updated_at"`

	// Relationships (GORM will handle these automatically)
	Parent   *Category   `json:"parent,omitempty" gorm:"foreignKey:ParentID;references:ID"`
	Children []*Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// CategoryWithProducts extends Category with product count
type CategoryWithProducts struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	ParentID    *uuid.UUID             `json:"parent_id"`
	ParentName  *string                `json:"parent_name"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Products    int                    `json:"products"`
	Children    []CategoryWithProducts `json:"children,omitempty"`
}

// BeforeCreate hook - runs automatically before creating a record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	// Auto-generate UUID v7 if not set
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// AfterUpdate hook - update children's parent_name when parent name changes
func (c *Category) AfterUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") {
		return tx.Model(&Category{}).
			Where("parent_id = ?", c.ID).
			Update("parent_name", c.Name).Error
	}
	return nil
}

// TableName specifies the table name (optional, GORM auto-pluralizes)
func (Category) TableName() string {
	return "categories"
}

// CategoryRequest is used when creating a category or subcategory
type CategoryRequest struct {
	Name        string     `json:"name" binding:"required" example:"Shoes"`
	Slug        string     `json:"slug" example:"shoes"`
	Description string     `json:"description" example:"Footwear for every occasion"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" example:"null"`
}

// UpdateCategoryRequest is used when updating a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}
