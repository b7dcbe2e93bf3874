// Package model defines the persisted entities of the registration app.
package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role has many Users through User.RoleId.
type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:64;uniqueIndex;not null"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"size:64;uniqueIndex;not null"`
	RoleId   int    `json:"roleId" gorm:"index;not null"`
	Role     Role   `json:"role" gorm:"foreignKey:RoleId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (User) TableName() string { return "users" }

type Disciplina struct {
	Id       int      `json:"id" gorm:"primaryKey;autoIncrement"`
	Nome     string   `json:"nome" gorm:"size:128;uniqueIndex;not null"`
	Semestre Semestre `json:"semestre" gorm:"size:2;not null"`
}

func (Disciplina) TableName() string { return "disciplinas" }

// Semestre is the term a discipline belongs to, stored as its key ("1".."6").
type Semestre string

var Semestres = []Semestre{"1", "2", "3", "4", "5", "6"}

func (s Semestre) Valid() bool {
	for _, v := range Semestres {
		if v == s {
			return true
		}
	}
	return false
}

// Label is the pt-BR display form, e.g. "3º semestre".
func (s Semestre) Label() string {
	return string(s) + "º semestre"
}

// RoleChoice is a role option offered by the registration form.
type RoleChoice struct {
	Value string
	Label string
}

var RoleChoices = []RoleChoice{
	{Value: "user", Label: "User"},
	{Value: "mod", Label: "Moderator"},
	{Value: "admin", Label: "Administrator"},
}

// NormalizeRoleName capitalizes a role label: first letter upper, rest lower.
func NormalizeRoleName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}
