package models

import (
	"gorm.io/gorm"
)

// Owner is the account every building/room/tenant/contract is scoped under.
type Owner struct {
	gorm.Model

	FullName string `json:"fullName"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Password string `json:"-"`
}
