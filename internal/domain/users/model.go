package users

import "time"

// User is an account in the moderated registration workflow. Rows are
// created with role "pending" by the public contact forms and promoted to
// editor/admin by an admin. Email is unique across every role.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null;index" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Role     string `gorm:"type:varchar(20);not null;default:'pending'" json:"role"`

	// "" for plain contacts, "pesquisador" for the researcher form.
	UserType string `gorm:"type:varchar(20)" json:"user_type,omitempty"`

	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`

	// Researcher-only fields.
	Instituicao  string `json:"instituicao,omitempty"`
	AreaPesquisa string `gorm:"column:area_pesquisa" json:"area_pesquisa,omitempty"`
	Lattes       string `json:"lattes,omitempty"`
	TipoVinculo  string `gorm:"column:tipo_vinculo" json:"tipo_vinculo,omitempty"`

	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
