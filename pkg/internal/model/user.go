package model

import "time"

// User 用户记录，Password 保存 bcrypt 哈希.
type User struct {
	ID        ID        `gorm:"primaryKey;type:varchar(24)" json:"id"`
	Email     string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null"           json:"-"`
	CreatedAt time.Time `json:"-"`
}
