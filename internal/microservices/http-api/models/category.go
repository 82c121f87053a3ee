package models

type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:150;not null"`
	Description string `json:"description" gorm:"type:text"`
	URL         string `json:"url" gorm:"column:url;size:150;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) String() string {
	return c.Name
}
