package entities

import "encoding/json"

// ExportSource is the implementation identifier stamped on every export document.
const ExportSource = "mockoon"

type ImportItemType string

const (
	ImportItemEnvironment ImportItemType = "environment"
	ImportItemRoute       ImportItemType = "route"
)

// ExportDocument is the on-wire unit of transfer between instances.
// Data order determines persistence order on import.
type ExportDocument struct {
	Source string       `json:"source"`
	Data   []ImportItem `json:"data"`
}

// ImportItem is one tagged entry of an export document. Item stays raw
// until the gate decides how (and whether) to decode it.
type ImportItem struct {
	Type ImportItemType  `json:"type"`
	Item json.RawMessage `json:"item"`
}

// ItemIdentity holds the fields every environment item is expected to carry,
// whatever its schema version.
type ItemIdentity struct {
	UUID          string `json:"uuid"`
	Name          string `json:"name"`
	LastMigration int    `json:"lastMigration"`
}
