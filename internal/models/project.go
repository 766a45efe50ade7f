package models

// Project represents a portfolio entry. IDs are canonical strings
// everywhere; path parameters are compared as strings and never parsed
// into numbers.
type Project struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Nome      string  `json:"nome" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Descricao string  `json:"descricao" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Preco     float64 `json:"preco" validate:"required,gt=0"`
	Tipo      string  `json:"tipo" gorm:"type:varchar(20)" validate:"required,oneof=Web Mobile"`
	Categoria string  `json:"categoria" gorm:"type:varchar(100)" validate:"required,max=100"`
}

// ProjectUpdate carries a partial update. Only non-nil fields are
// merged onto the stored record; the ID is not representable here, so
// an update can never reassign it.
type ProjectUpdate struct {
	Nome      *string  `json:"nome" validate:"omitempty,min=3,max=100"`
	Descricao *string  `json:"descricao" validate:"omitempty,max=500"`
	Preco     *float64 `json:"preco" validate:"omitempty,gt=0"`
	Tipo      *string  `json:"tipo" validate:"omitempty,oneof=Web Mobile"`
	Categoria *string  `json:"categoria" validate:"omitempty,max=100"`
}

// Apply merges the set fields of the update onto p.
func (u *ProjectUpdate) Apply(p *Project) {
	if u.Nome != nil {
		p.Nome = *u.Nome
	}
	if u.Descricao != nil {
		p.Descricao = *u.Descricao
	}
	if u.Preco != nil {
		p.Preco = *u.Preco
	}
	if u.Tipo != nil {
		p.Tipo = *u.Tipo
	}
	if u.Categoria != nil {
		p.Categoria = *u.Categoria
	}
}
