package models

import "time"

// Cliente pertence sempre a um único usuário
type Client struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Nome     string `gorm:"size:100;not null" json:"nome"`
	Telefone string `gorm:"size:20" json:"telefone"`
	Email    string `gorm:"size:100" json:"email"`

	Ordens []Ordem `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"-"`
}
