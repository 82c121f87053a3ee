package models

// Actor is used both for cast members and for directors.
type Actor struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:100;not null;index"`
	Age         int    `json:"age" gorm:"not null;default:0;check:age >= 0"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:255"`
}

func (Actor) TableName() string {
	return "actors"
}

func (a Actor) String() string {
	return a.Name
}
