package models

const RoleUser = "user"

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description *string `gorm:"type:text"                 json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
	Category    *string `gorm:"type:text"                 json:"category"`
	ImageURL    *string `gorm:"column:image_url;type:text" json:"image_url"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string `gorm:"not null"                  json:"name"`
	Email        string `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string `gorm:"column:password;not null"  json:"-"`
	Role         string `gorm:"default:user"              json:"role"`
}
