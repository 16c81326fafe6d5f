// Package migrations upgrades environment documents to the current schema
// and checks that the result is structurally valid.
//
// Documents are migrated as raw JSON objects. Migration n moves a document
// from schema version n-1 to n; a document stamped with lastMigration v gets
// every step in (v, HighestMigrationID] applied in order. Steps only fill in
// missing fields or rewrite legacy ones, which keeps them idempotent and makes
// a direct migration equal to any chain of partial ones.
package migrations

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// HighestMigrationID is the newest schema version this build understands.
const HighestMigrationID = 18

// Migration is a single forward schema step.
type Migration struct {
	ID          int
	Description string
	Apply       func(env map[string]any)
}

var registry = []Migration{
	{ID: 1, Description: "add endpoint prefix", Apply: func(env map[string]any) {
		setDefault(env, "endpointPrefix", "")
	}},
	{ID: 2, Description: "add environment latency", Apply: func(env map[string]any) {
		setDefault(env, "latency", 0)
	}},
	{ID: 3, Description: "add route documentation", Apply: func(env map[string]any) {
		for _, route := range objects(env, "routes") {
			setDefault(route, "documentation", "")
		}
	}},
	{ID: 4, Description: "add proxy settings", Apply: func(env map[string]any) {
		setDefault(env, "proxyMode", false)
		setDefault(env, "proxyHost", "")
	}},
	{ID: 5, Description: "add https flag", Apply: func(env map[string]any) {
		if _, ok := env["tlsOptions"]; !ok {
			setDefault(env, "https", false)
		}
	}},
	{ID: 6, Description: "move route level response fields into responses", Apply: func(env map[string]any) {
		for _, route := range objects(env, "routes") {
			if _, ok := route["responses"]; ok {
				continue
			}
			response := map[string]any{}
			for _, key := range []string{"statusCode", "body", "headers", "latency", "filePath", "sendFileAsBody"} {
				if v, ok := route[key]; ok {
					response[key] = v
					delete(route, key)
				}
			}
			setDefault(response, "statusCode", 200)
			setDefault(response, "body", "")
			setDefault(response, "headers", []any{})
			setDefault(response, "latency", 0)
			route["responses"] = []any{response}
		}
	}},
	{ID: 7, Description: "add cors flag", Apply: func(env map[string]any) {
		setDefault(env, "cors", true)
	}},
	{ID: 8, Description: "replace content type with environment headers", Apply: func(env map[string]any) {
		contentType, hasContentType := env["contentType"].(string)
		delete(env, "contentType")
		if _, ok := env["headers"]; ok {
			return
		}
		headers := []any{}
		if hasContentType && contentType != "" {
			headers = append(headers, map[string]any{"key": "Content-Type", "value": contentType})
		}
		env["headers"] = headers
	}},
	{ID: 9, Description: "add response rules", Apply: func(env map[string]any) {
		for _, response := range responses(env) {
			setDefault(response, "rules", []any{})
			setDefault(response, "rulesOperator", "OR")
		}
	}},
	{ID: 10, Description: "add proxy request and response headers", Apply: func(env map[string]any) {
		setDefault(env, "proxyReqHeaders", []any{map[string]any{"key": "", "value": ""}})
		setDefault(env, "proxyResHeaders", []any{map[string]any{"key": "", "value": ""}})
	}},
	{ID: 11, Description: "add hostname", Apply: func(env map[string]any) {
		setDefault(env, "hostname", DefaultHostname)
	}},
	{ID: 12, Description: "replace https flag with tls options", Apply: func(env map[string]any) {
		enabled, _ := env["https"].(bool)
		delete(env, "https")
		setDefault(env, "tlsOptions", map[string]any{
			"enabled":    enabled,
			"type":       "CERT",
			"pfxPath":    "",
			"certPath":   "",
			"keyPath":    "",
			"caPath":     "",
			"passphrase": "",
		})
	}},
	{ID: 13, Description: "add templating and 404 fallback flags", Apply: func(env map[string]any) {
		for _, response := range responses(env) {
			setDefault(response, "disableTemplating", false)
			setDefault(response, "fallbackTo404", false)
		}
	}},
	{ID: 14, Description: "add random and sequential response flags", Apply: func(env map[string]any) {
		for _, route := range objects(env, "routes") {
			setDefault(route, "randomResponse", false)
			setDefault(route, "sequentialResponse", false)
		}
	}},
	{ID: 15, Description: "mark first response as default", Apply: func(env map[string]any) {
		for _, route := range objects(env, "routes") {
			list := objects(route, "responses")
			hasDefault := false
			for _, response := range list {
				if isDefault, _ := response["default"].(bool); isDefault {
					hasDefault = true
				}
			}
			for i, response := range list {
				setDefault(response, "default", !hasDefault && i == 0)
			}
		}
	}},
	{ID: 16, Description: "add route enabled flag", Apply: func(env map[string]any) {
		for _, route := range objects(env, "routes") {
			setDefault(route, "enabled", true)
		}
	}},
	{ID: 17, Description: "add proxy prefix removal", Apply: func(env map[string]any) {
		setDefault(env, "proxyRemovePrefix", false)
	}},
	{ID: 18, Description: "add identifiers and file options to responses", Apply: func(env map[string]any) {
		envUUID, _ := env["uuid"].(string)
		for i, route := range objects(env, "routes") {
			setDefault(route, "uuid", derivedUUID(envUUID, "route", strconv.Itoa(i)))
			routeUUID, _ := route["uuid"].(string)
			for j, response := range objects(route, "responses") {
				setDefault(response, "uuid", derivedUUID(routeUUID, "response", strconv.Itoa(j)))
				setDefault(response, "label", "")
				setDefault(response, "filePath", "")
				setDefault(response, "sendFileAsBody", false)
			}
		}
	}},
}

func init() {
	if len(registry) != HighestMigrationID {
		panic(fmt.Sprintf("migrations: %d steps registered, highest id is %d", len(registry), HighestMigrationID))
	}
	for i, m := range registry {
		if m.ID != i+1 {
			panic(fmt.Sprintf("migrations: step %d registered at position %d", m.ID, i+1))
		}
	}
}

// Migrations returns the ordered list of schema steps.
func Migrations() []Migration {
	out := make([]Migration, len(registry))
	copy(out, registry)
	return out
}

// UnreadableStamp is what LastMigration reports for a stamp no build could
// have written: fractional, non-finite or beyond the int range. It compares
// greater than HighestMigrationID so such items are treated as too new.
const UnreadableStamp = math.MaxInt

// LastMigration reads the schema stamp of a raw environment. Missing,
// non-numeric or negative stamps count as version 0.
func LastMigration(raw map[string]any) int {
	switch v := raw["lastMigration"].(type) {
	case float64:
		return stampFromFloat(v)
	case int:
		return max(v, 0)
	case int64:
		return stampFromFloat(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return stampFromFloat(float64(n))
		}
		f, err := v.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return 0
		}
		return stampFromFloat(f)
	}
	return 0
}

// stampFromFloat checks range and integrality before converting, since
// int(v) is undefined for values outside the int range.
func stampFromFloat(v float64) int {
	switch {
	case math.IsNaN(v):
		return UnreadableStamp
	case v < 0:
		return 0
	case math.IsInf(v, 1), v != math.Trunc(v), v > maxExactStamp:
		return UnreadableStamp
	}
	return int(v)
}

// maxExactStamp is the largest stamp accepted as an integer. Far above
// HighestMigrationID and exactly representable as float64.
const maxExactStamp = 1 << 31

// MigrateTo applies every step after the document's stamp up to target and
// returns the migrated copy. The input is never modified. Targets above
// HighestMigrationID are clamped; documents already at or past target are
// copied unchanged.
func MigrateTo(raw map[string]any, target int) map[string]any {
	if target > HighestMigrationID {
		target = HighestMigrationID
	}
	if target < 0 {
		target = 0
	}
	env := deepCopy(raw)
	from := LastMigration(env)
	if from >= target {
		return env
	}
	if from < 0 {
		from = 0
	}
	for _, m := range registry[from:target] {
		m.Apply(env)
	}
	env["lastMigration"] = target
	return env
}

// Migrate upgrades a raw environment to HighestMigrationID.
func Migrate(raw map[string]any) map[string]any {
	return MigrateTo(raw, HighestMigrationID)
}

func setDefault(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// objects returns the entries of m[key] that are JSON objects.
func objects(m map[string]any, key string) []map[string]any {
	list, _ := m[key].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func responses(env map[string]any) []map[string]any {
	var out []map[string]any
	for _, route := range objects(env, "routes") {
		out = append(out, objects(route, "responses")...)
	}
	return out
}

// derivedUUID builds a stable identifier so that migrating the same document
// twice yields the same result.
func derivedUUID(parts ...string) string {
	name := ""
	for _, p := range parts {
		name += "/" + p
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("envport:"+name)).String()
}

func deepCopy(raw map[string]any) map[string]any {
	data, err := json.Marshal(raw)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
