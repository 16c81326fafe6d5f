package importers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/migrations"
)

// exportDocumentSchema describes what an export document looks like on the
// wire. Anything else is treated as "not ours" rather than as an error.
const exportDocumentSchema = `{
  "type": "object",
  "required": ["source", "data"],
  "properties": {
    "source": {"type": "string", "pattern": "^mockoon(:.*)?$"},
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "item"],
        "properties": {
          "type": {"type": "string"},
          "item": {"type": "object"}
        }
      }
    }
  }
}`

var documentSchema = mustLoadSchema(exportDocumentSchema)

func mustLoadSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("importers: invalid export document schema: %v", err))
	}
	return schema
}

// DocumentValidation is the result of checking raw bytes against the export
// document shape.
type DocumentValidation struct {
	Valid  bool
	Reason string
}

// ValidateDocument checks raw against the export document schema.
// Callers must have already checked that raw is well-formed JSON.
func ValidateDocument(raw []byte) DocumentValidation {
	result, err := documentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return DocumentValidation{Reason: err.Error()}
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return DocumentValidation{Reason: strings.Join(reasons, "; ")}
	}
	return DocumentValidation{Valid: true}
}

// IsImportable reports whether raw is an export document this build can read.
func IsImportable(raw []byte) bool {
	return ValidateDocument(raw).Valid
}

// Action is what the pipeline should do with an import item.
type Action int

const (
	// ActionProceed commits the migrated environment.
	ActionProceed Action = iota
	// ActionSkip drops the item and reports why.
	ActionSkip
	// ActionIgnore drops the item silently. Used for item types this
	// build does not process.
	ActionIgnore
)

func (a Action) String() string {
	switch a {
	case ActionProceed:
		return "proceed"
	case ActionSkip:
		return "skip"
	case ActionIgnore:
		return "ignore"
	}
	return "unknown"
}

// ReasonTooNew marks items whose schema stamp is above HighestMigrationID or
// cannot be read as an integer.
const ReasonTooNew = "too new"

// Decision is the gate verdict for one import item.
type Decision struct {
	Action   Action
	Reason   string
	Identity entities.ItemIdentity

	// Set when Action is ActionProceed.
	Environment *entities.Environment
	// Repaired is set when the migrated item failed validation and was
	// rebuilt from salvageable fields. ValidationErr says why.
	Repaired      bool
	ValidationErr error
}

// AcceptItem decides whether item can be committed, migrating and validating
// environment payloads on the way.
func AcceptItem(item entities.ImportItem) Decision {
	if item.Type != entities.ImportItemEnvironment {
		return Decision{Action: ActionIgnore}
	}

	var raw map[string]any
	if err := json.Unmarshal(item.Item, &raw); err != nil || raw == nil {
		raw = map[string]any{}
	}

	identity := entities.ItemIdentity{LastMigration: migrations.LastMigration(raw)}
	identity.UUID, _ = raw["uuid"].(string)
	identity.Name, _ = raw["name"].(string)

	if identity.LastMigration > migrations.HighestMigrationID {
		return Decision{Action: ActionSkip, Reason: ReasonTooNew, Identity: identity}
	}

	env, repaired, validationErr := migrations.MigrateAndValidate(raw)
	return Decision{
		Action:        ActionProceed,
		Identity:      identity,
		Environment:   env,
		Repaired:      repaired,
		ValidationErr: validationErr,
	}
}
