package models

// User represents a registered account. Wire field names are kept in
// Portuguese for compatibility with the original API consumers.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Nome  string `json:"nome" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Senha string `json:"senha" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash at rest
}

// PublicUser is the client-facing view of a User with the credential
// material stripped.
type PublicUser struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// Public returns the user without the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Nome: u.Nome, Email: u.Email}
}
