package migrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mrlokans/envport/internal/entities"
)

var validate = validator.New()

// ErrInvalidEnvironment wraps every structural validation failure.
var ErrInvalidEnvironment = errors.New("invalid environment")

var validMethods = map[string]bool{
	"get": true, "post": true, "put": true, "patch": true,
	"delete": true, "head": true, "options": true, "all": true,
}

// Decode converts a migrated raw document into the typed environment.
func Decode(raw map[string]any) (*entities.Environment, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvironment, err)
	}
	var env entities.Environment
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvironment, err)
	}
	return &env, nil
}

// Validate checks an environment against the current schema.
func Validate(env *entities.Environment) error {
	if env == nil {
		return fmt.Errorf("%w: missing environment", ErrInvalidEnvironment)
	}
	if env.LastMigration != HighestMigrationID {
		return fmt.Errorf("%w: lastMigration %d, expected %d", ErrInvalidEnvironment, env.LastMigration, HighestMigrationID)
	}
	if err := validateStruct(env); err != nil {
		return err
	}
	for _, route := range env.Routes {
		if err := checkDefaultResponse(route); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRoute checks a single route against the current schema.
func ValidateRoute(route *entities.Route) error {
	if route == nil {
		return fmt.Errorf("%w: missing route", ErrInvalidEnvironment)
	}
	if err := validateStruct(route); err != nil {
		return err
	}
	return checkDefaultResponse(*route)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidEnvironment, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidEnvironment, err)
}

// checkDefaultResponse enforces exactly one default response per route.
func checkDefaultResponse(route entities.Route) error {
	defaults := 0
	for _, response := range route.Responses {
		if response.Default {
			defaults++
		}
	}
	if defaults != 1 {
		return fmt.Errorf("%w: route %s has %d default responses", ErrInvalidEnvironment, route.UUID, defaults)
	}
	return nil
}

// MigrateAndValidate migrates raw to the current schema and validates it.
// When the migrated document is not valid it is repaired instead; the
// validation error is returned alongside the repaired environment.
func MigrateAndValidate(raw map[string]any) (env *entities.Environment, repaired bool, validationErr error) {
	migrated := Migrate(raw)

	env, err := Decode(migrated)
	if err == nil {
		err = Validate(env)
	}
	if err == nil {
		return env, false, nil
	}
	return Repair(migrated), true, err
}

// Repair builds a valid environment from whatever parts of raw can be
// salvaged. The result always passes Validate.
func Repair(raw map[string]any) *entities.Environment {
	env := NewEnvironment("")
	env.Headers = []entities.Header{}

	decodeField(raw, "uuid", &env.UUID)
	decodeField(raw, "name", &env.Name)
	decodeField(raw, "endpointPrefix", &env.EndpointPrefix)
	decodeField(raw, "latency", &env.Latency)
	decodeField(raw, "port", &env.Port)
	decodeField(raw, "hostname", &env.Hostname)
	decodeField(raw, "proxyMode", &env.ProxyMode)
	decodeField(raw, "proxyHost", &env.ProxyHost)
	decodeField(raw, "proxyRemovePrefix", &env.ProxyRemovePrefix)
	decodeField(raw, "tlsOptions", &env.TLSOptions)
	decodeField(raw, "cors", &env.CORS)
	env.Headers = repairHeaders(raw["headers"])
	env.ProxyReqHeaders = repairHeaders(raw["proxyReqHeaders"])
	env.ProxyResHeaders = repairHeaders(raw["proxyResHeaders"])

	if env.UUID == "" {
		env.UUID = uuid.NewString()
	}
	env.LastMigration = HighestMigrationID
	if env.Latency < 0 {
		env.Latency = 0
	}
	if env.Port < 0 || env.Port > 65535 {
		env.Port = DefaultPort
	}
	if env.TLSOptions.Type != entities.TLSTypeCert && env.TLSOptions.Type != entities.TLSTypePFX {
		env.TLSOptions.Type = entities.TLSTypeCert
	}

	env.Routes = []entities.Route{}
	list, _ := raw["routes"].([]any)
	for i, item := range list {
		routeRaw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		env.Routes = append(env.Routes, repairRoute(routeRaw, env.UUID, i))
	}
	return env
}

func repairRoute(raw map[string]any, envUUID string, index int) entities.Route {
	route := entities.Route{Enabled: true}
	decodeField(raw, "uuid", &route.UUID)
	decodeField(raw, "documentation", &route.Documentation)
	decodeField(raw, "method", &route.Method)
	decodeField(raw, "endpoint", &route.Endpoint)
	decodeField(raw, "enabled", &route.Enabled)
	decodeField(raw, "randomResponse", &route.RandomResponse)
	decodeField(raw, "sequentialResponse", &route.SequentialResponse)

	if route.UUID == "" {
		route.UUID = derivedUUID(envUUID, "route", strconv.Itoa(index))
	}
	route.Method = strings.ToLower(route.Method)
	if !validMethods[route.Method] {
		route.Method = "get"
	}

	list, _ := raw["responses"].([]any)
	for i, item := range list {
		responseRaw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		route.Responses = append(route.Responses, repairResponse(responseRaw, route.UUID, i))
	}
	if len(route.Responses) == 0 {
		response := NewRouteResponse(200, true)
		response.UUID = derivedUUID(route.UUID, "response", "0")
		route.Responses = []entities.RouteResponse{response}
	}

	defaultSeen := false
	for i := range route.Responses {
		if route.Responses[i].Default && !defaultSeen {
			defaultSeen = true
			continue
		}
		route.Responses[i].Default = false
	}
	if !defaultSeen {
		route.Responses[0].Default = true
	}
	return route
}

func repairResponse(raw map[string]any, routeUUID string, index int) entities.RouteResponse {
	response := NewRouteResponse(200, false)
	response.UUID = ""
	decodeField(raw, "uuid", &response.UUID)
	decodeField(raw, "body", &response.Body)
	decodeField(raw, "latency", &response.Latency)
	decodeField(raw, "statusCode", &response.StatusCode)
	decodeField(raw, "label", &response.Label)
	decodeField(raw, "filePath", &response.FilePath)
	decodeField(raw, "sendFileAsBody", &response.SendFileAsBody)
	decodeField(raw, "rulesOperator", &response.RulesOperator)
	decodeField(raw, "disableTemplating", &response.DisableTemplating)
	decodeField(raw, "fallbackTo404", &response.FallbackTo404)
	decodeField(raw, "default", &response.Default)
	response.Headers = repairHeaders(raw["headers"])

	if response.UUID == "" {
		response.UUID = derivedUUID(routeUUID, "response", strconv.Itoa(index))
	}
	if response.StatusCode < 100 || response.StatusCode > 599 {
		response.StatusCode = 200
	}
	if response.Latency < 0 {
		response.Latency = 0
	}
	if response.RulesOperator != entities.RulesOperatorOR && response.RulesOperator != entities.RulesOperatorAND {
		response.RulesOperator = entities.RulesOperatorOR
	}

	rules, _ := raw["rules"].([]any)
	for _, item := range rules {
		var rule entities.ResponseRule
		if !decodeValue(item, &rule) {
			continue
		}
		if validate.Struct(rule) == nil {
			response.Rules = append(response.Rules, rule)
		}
	}
	return response
}

func repairHeaders(value any) []entities.Header {
	headers := []entities.Header{}
	list, _ := value.([]any)
	for _, item := range list {
		var header entities.Header
		if decodeValue(item, &header) {
			headers = append(headers, header)
		}
	}
	return headers
}

// decodeField copies raw[key] into dst when the value has a compatible type.
func decodeField(raw map[string]any, key string, dst any) {
	if value, ok := raw[key]; ok {
		decodeValue(value, dst)
	}
}

func decodeValue(value any, dst any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}
