package models

type Genre struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	URL         string `json:"url" gorm:"column:url;size:100;uniqueIndex;not null"`
}

func (Genre) TableName() string {
	return "genres"
}

func (g Genre) String() string {
	return g.Name
}
