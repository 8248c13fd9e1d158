package user

import "time"

// User 论坛用户
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Nickname     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"nickname"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Avatar       *string   `gorm:"type:varchar(255)" json:"avatar,omitempty"` // 相对 media.root 的路径
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
