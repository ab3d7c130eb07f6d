package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/supervisor.txt
	supervisorRaw string

	//go:embed template/compose.txt
	composeRaw string

	//go:embed template/catalog.txt
	catalogRaw string

	//go:embed template/order.txt
	orderRaw string

	//go:embed template/database.txt
	databaseRaw string
)

// PromptSet holds loaded prompt content. Prompts are rendered through eino's
// FString templates, so literal braces inside the files are doubled.
type PromptSet struct {
	Supervisor string
	Compose    string
	Catalog    string
	Order      string
	Database   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Supervisor: strings.TrimSpace(supervisorRaw),
		Compose:    strings.TrimSpace(composeRaw),
		Catalog:    strings.TrimSpace(catalogRaw),
		Order:      strings.TrimSpace(orderRaw),
		Database:   strings.TrimSpace(databaseRaw),
	}
}
