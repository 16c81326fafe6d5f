package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/envport/internal/entities"
	"github.com/mrlokans/envport/internal/migrations"
	"github.com/mrlokans/envport/internal/services"
)

// ErrUnsupportedVersion is returned for documents that are neither Swagger 2.0
// nor OpenAPI 3.x.
var ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")

var pathParam = regexp.MustCompile(`\{([^}/]+)\}`)

// Converter translates between environments and OpenAPI documents.
type Converter struct {
	files services.FileStore
}

func NewConverter(files services.FileStore) *Converter {
	return &Converter{files: files}
}

// FromOpenAPI reads a Swagger 2.0 or OpenAPI 3.x file (JSON or YAML) and
// builds a new environment from it. The result is stamped with the current
// schema version and always passes migrations.Validate.
func (c *Converter) FromOpenAPI(ctx context.Context, path string) (*entities.Environment, error) {
	data, err := c.files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse converts raw Swagger/OpenAPI bytes into an environment.
func Parse(data []byte) (*entities.Environment, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to parse document: top level is not an object")
	}
	normalized, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var env *entities.Environment
	switch {
	case isSwagger2(root["swagger"]):
		var swagger spec.Swagger
		if err := json.Unmarshal(normalized, &swagger); err != nil {
			return nil, fmt.Errorf("failed to parse Swagger document: %w", err)
		}
		env = fromSwagger(&swagger)
	case strings.HasPrefix(fmt.Sprint(root["openapi"]), "3."):
		var doc Document
		if err := json.Unmarshal(normalized, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
		}
		env = fromV3(&doc)
	default:
		return nil, ErrUnsupportedVersion
	}

	if err := migrations.Validate(env); err != nil {
		return nil, fmt.Errorf("converted environment is invalid: %w", err)
	}
	return env, nil
}

// isSwagger2 accepts both the quoted "2.0" and an unquoted YAML 2.0 number.
func isSwagger2(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "2.0" || t == "2"
	case float64:
		return t == 2
	case int:
		return t == 2
	}
	return false
}

func fromV3(doc *Document) *entities.Environment {
	env := migrations.NewEnvironment(doc.Info.Title)
	if len(doc.Servers) > 0 {
		applyServer(env, doc.Servers[0].URL)
	}

	for _, path := range sortedKeys(doc.Paths) {
		for _, mo := range doc.Paths[path].operations() {
			route := newRoute(mo.method, path, mo.op.Summary, mo.op.Description)
			for _, code := range sortedKeys(mo.op.Responses) {
				response := mo.op.Responses[code]
				status := parseStatus(code)

				out := migrations.NewRouteResponse(status, false)
				out.Label = response.Description
				for _, name := range sortedKeys(response.Headers) {
					out.Headers = append(out.Headers, entities.Header{Key: name, Value: exampleString(response.Headers[name].Example)})
				}
				for _, contentType := range sortedKeys(response.Content) {
					out.Headers = append(out.Headers, entities.Header{Key: "Content-Type", Value: contentType})
					out.Body = exampleString(response.Content[contentType].Example)
					break
				}
				route.Responses = append(route.Responses, out)
			}
			env.Routes = append(env.Routes, finishRoute(route))
		}
	}
	return env
}

func fromSwagger(doc *spec.Swagger) *entities.Environment {
	title := ""
	if doc.Info != nil {
		title = doc.Info.Title
	}
	env := migrations.NewEnvironment(title)
	if doc.Host != "" {
		scheme := "http"
		if len(doc.Schemes) > 0 {
			scheme = doc.Schemes[0]
		}
		applyServer(env, scheme+"://"+doc.Host+doc.BasePath)
	} else {
		env.EndpointPrefix = strings.Trim(doc.BasePath, "/")
	}
	if doc.Paths == nil {
		return env
	}

	for _, path := range sortedKeys(doc.Paths.Paths) {
		item := doc.Paths.Paths[path]
		operations := []struct {
			method string
			op     *spec.Operation
		}{
			{"get", item.Get},
			{"post", item.Post},
			{"put", item.Put},
			{"patch", item.Patch},
			{"delete", item.Delete},
			{"head", item.Head},
			{"options", item.Options},
		}
		for _, mo := range operations {
			if mo.op == nil {
				continue
			}
			route := newRoute(mo.method, path, mo.op.Summary, mo.op.Description)
			produces := doc.Produces
			if len(mo.op.Produces) > 0 {
				produces = mo.op.Produces
			}

			if mo.op.Responses != nil {
				codes := make([]int, 0, len(mo.op.Responses.StatusCodeResponses))
				for code := range mo.op.Responses.StatusCodeResponses {
					codes = append(codes, code)
				}
				sort.Ints(codes)
				for _, code := range codes {
					route.Responses = append(route.Responses, swaggerResponse(code, mo.op.Responses.StatusCodeResponses[code], produces))
				}
				if len(codes) == 0 && mo.op.Responses.Default != nil {
					route.Responses = append(route.Responses, swaggerResponse(http.StatusOK, *mo.op.Responses.Default, produces))
				}
			}
			env.Routes = append(env.Routes, finishRoute(route))
		}
	}
	return env
}

func swaggerResponse(code int, response spec.Response, produces []string) entities.RouteResponse {
	out := migrations.NewRouteResponse(parseStatus(strconv.Itoa(code)), false)
	out.Label = response.Description
	for _, name := range sortedKeys(response.Headers) {
		out.Headers = append(out.Headers, entities.Header{Key: name, Value: exampleString(response.Headers[name].Example)})
	}

	contentType := ""
	if len(produces) > 0 {
		contentType = produces[0]
	}
	for _, mime := range sortedKeys(response.Examples) {
		contentType = mime
		out.Body = exampleString(response.Examples[mime])
		break
	}
	if contentType != "" {
		out.Headers = append(out.Headers, entities.Header{Key: "Content-Type", Value: contentType})
	}
	return out
}

func newRoute(method, path, summary, description string) entities.Route {
	route := migrations.NewRoute(pathParam.ReplaceAllString(strings.TrimPrefix(path, "/"), ":$1"))
	route.Method = method
	route.Responses = nil
	route.Documentation = summary
	if route.Documentation == "" {
		route.Documentation = description
	}
	return route
}

// finishRoute makes sure the route has a response and exactly one default.
func finishRoute(route entities.Route) entities.Route {
	if len(route.Responses) == 0 {
		route.Responses = []entities.RouteResponse{migrations.NewRouteResponse(http.StatusOK, true)}
		return route
	}
	route.Responses[0].Default = true
	return route
}

func applyServer(env *entities.Environment, raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		return
	}
	if port, err := strconv.Atoi(u.Port()); err == nil && port > 0 && port <= 65535 {
		env.Port = port
	}
	env.TLSOptions.Enabled = u.Scheme == "https"
	env.EndpointPrefix = strings.Trim(u.Path, "/")
}

// parseStatus maps an OpenAPI response key to a status code. "default" and
// ranges like "2XX" fall back to the first code of their class.
func parseStatus(key string) int {
	if code, err := strconv.Atoi(key); err == nil && code >= 100 && code <= 599 {
		return code
	}
	if len(key) == 3 && strings.EqualFold(key[1:], "xx") && key[0] >= '1' && key[0] <= '5' {
		return int(key[0]-'0') * 100
	}
	return http.StatusOK
}

func exampleString(example any) string {
	switch v := example.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	data, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return fmt.Sprint(example)
	}
	return string(data)
}

// normalize converts YAML-decoded maps with non-string keys (such as
// unquoted response codes) into JSON-compatible maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
