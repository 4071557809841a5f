package model

// swagger:model Class
type Class struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Students []User `gorm:"foreignKey:ClassID" json:"students,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}
