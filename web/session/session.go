// Package session stores the name/known identity echo in the gin session.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	nameKey  = "name"
	knownKey = "known"

	// DefaultName is shown while the session has not submitted a name yet.
	DefaultName = "Estranho"
)

// State is the per-session identity echo. The zero value is the anonymous
// session.
type State struct {
	Name  string `json:"name"`
	Known bool   `json:"known"`
}

// Anonymous reports whether no name was ever submitted in this session.
func (s State) Anonymous() bool {
	return s.Name == ""
}

// DisplayName returns the remembered name or DefaultName.
func (s State) DisplayName() string {
	if s.Name == "" {
		return DefaultName
	}
	return s.Name
}

func GetState(c *gin.Context) State {
	s := sessions.Default(c)
	var st State
	if name, ok := s.Get(nameKey).(string); ok {
		st.Name = name
	}
	if known, ok := s.Get(knownKey).(bool); ok {
		st.Known = known
	}
	return st
}

func SaveState(c *gin.Context, st State) error {
	s := sessions.Default(c)
	s.Set(nameKey, st.Name)
	s.Set(knownKey, st.Known)
	return s.Save()
}
