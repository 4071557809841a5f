package model

// Competency is a named test subject. The slug is the external
// identifier used in every student and teacher facing URL; it is
// derived from the title on create and never regenerated.
// swagger:model Competency
type Competency struct {
	BaseModel
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Duration is the time limit in minutes; 0 means untimed.
	Duration  int        `gorm:"default:0" json:"duration"`
	TeacherID uint       `gorm:"index;not null" json:"teacherId"`
	Questions []Question `gorm:"foreignKey:CompetencyID" json:"questions,omitempty"`
}

func (Competency) TableName() string {
	return "competencies"
}
