package models

type Preferences struct {
	DarkMode bool `json:"darkMode"`
}
