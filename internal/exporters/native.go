package exporters

import (
	"encoding/json"
	"fmt"

	"github.com/mrlokans/envport/internal/entities"
)

// NativeSerializer builds export documents in the native format.
type NativeSerializer struct {
	Version string
}

// Source is the identifier stamped on every document, e.g. "mockoon:1.4.0".
func (s NativeSerializer) Source() string {
	if s.Version == "" {
		return entities.ExportSource
	}
	return entities.ExportSource + ":" + s.Version
}

// Environment serializes a single environment as an export document.
func (s NativeSerializer) Environment(env *entities.Environment) ([]byte, error) {
	return s.document(entities.ImportItemEnvironment, env)
}

// Route serializes a single route as an export document.
func (s NativeSerializer) Route(route entities.Route) ([]byte, error) {
	return s.document(entities.ImportItemRoute, route)
}

func (s NativeSerializer) document(itemType entities.ImportItemType, item any) ([]byte, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", itemType, err)
	}

	doc := entities.ExportDocument{
		Source: s.Source(),
		Data:   []entities.ImportItem{{Type: itemType, Item: payload}},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export document: %w", err)
	}
	return data, nil
}

// DecodeRoute extracts the first route item of a native export document.
func DecodeRoute(raw []byte) (*entities.Route, error) {
	var doc entities.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse export document: %w", err)
	}
	for _, item := range doc.Data {
		if item.Type != entities.ImportItemRoute {
			continue
		}
		var route entities.Route
		if err := json.Unmarshal(item.Item, &route); err != nil {
			return nil, fmt.Errorf("failed to parse route: %w", err)
		}
		return &route, nil
	}
	return nil, ErrNoRoute
}
