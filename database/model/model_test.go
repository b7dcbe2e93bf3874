package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoleName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"user", "User"},
		{"USER", "User"},
		{"admin", "Admin"},
		{"mOd", "Mod"},
		{"  user ", "User"},
		{"élève", "Élève"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRoleName(tt.in), tt.in)
	}
}

func TestSemestre(t *testing.T) {
	assert.True(t, Semestre("1").Valid())
	assert.True(t, Semestre("6").Valid())
	assert.False(t, Semestre("7").Valid())
	assert.False(t, Semestre("").Valid())
	assert.Equal(t, "2º semestre", Semestre("2").Label())
}
