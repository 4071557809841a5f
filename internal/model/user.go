package model

type UserRole string

const (
	Admin   UserRole = "admin"
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:50;not null" json:"name"`
	Username string   `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    *string  `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	Phone    *string  `gorm:"size:15;uniqueIndex" json:"phone,omitempty"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('admin','teacher','student');default:'student'" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	// ClassID is set for students only
	ClassID *uint `gorm:"index" json:"classId,omitempty"`
}

func (User) TableName() string {
	return "users"
}
