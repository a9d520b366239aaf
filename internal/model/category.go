package model

// swagger:model Category
type Category struct {
	BaseModel
	Name  string `gorm:"size:100;not null" json:"name"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Color string `gorm:"size:20" json:"color"`
	Icon  string `gorm:"size:50" json:"icon"`
}

func (Category) TableName() string {
	return "categories"
}
