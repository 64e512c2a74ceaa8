package assets

import (
	"embed"
)

//go:embed default_items.csv questions.json
var FS embed.FS

// DefaultItemsCSV returns the embedded fallback dataset (name,file,category).
func DefaultItemsCSV() ([]byte, error) {
	return FS.ReadFile("default_items.csv")
}

// QuestionsJSON returns the embedded quiz question bank.
func QuestionsJSON() ([]byte, error) {
	return FS.ReadFile("questions.json")
}
