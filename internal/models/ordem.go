package models

import "time"

// Ordem de serviço; o dono é o usuário dono do cliente (ownership transitivo)
type Ordem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index;not null" json:"client_id"`

	NomeServico      string  `gorm:"size:100;not null" json:"nome_servico"`
	DescricaoServico string  `gorm:"type:text" json:"descricao_servico"`
	Valor            float64 `gorm:"default:0" json:"valor"`
	Status           string  `gorm:"size:20;default:'Pendente'" json:"status"`

	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"date_updated"`
}

// plural de "ordem" em português
func (Ordem) TableName() string {
	return "ordens"
}
