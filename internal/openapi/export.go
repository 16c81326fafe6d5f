package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrlokans/envport/internal/entities"
)

const exportedVersion = "3.0.0"

var routeParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// ToOpenAPI converts env into an OpenAPI 3.0 JSON document.
//
// Routes using the "all" method have no OpenAPI equivalent and are left out.
// When several responses of a route share a status code only the first one
// is exported.
func (c *Converter) ToOpenAPI(env *entities.Environment) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("no environment to export")
	}

	doc := Document{
		OpenAPI: exportedVersion,
		Info:    Info{Title: env.Name, Version: "1.0.0"},
		Servers: []Server{{URL: serverURL(env)}},
		Paths:   map[string]PathItem{},
	}

	for _, route := range env.Routes {
		if route.Method == "all" {
			continue
		}
		path, params := convertEndpoint(route.Endpoint)
		item := doc.Paths[path]
		op := &Operation{
			Summary:    route.Documentation,
			Parameters: params,
			Responses:  map[string]Response{},
		}
		for _, response := range route.Responses {
			key := strconv.Itoa(response.StatusCode)
			if _, exists := op.Responses[key]; exists {
				continue
			}
			op.Responses[key] = convertResponse(env, response)
		}
		if !item.set(route.Method, op) {
			return nil, fmt.Errorf("route %s has unsupported method %q", route.UUID, route.Method)
		}
		doc.Paths[path] = item
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize OpenAPI document: %w", err)
	}
	return data, nil
}

func serverURL(env *entities.Environment) string {
	scheme := "http"
	if env.TLSOptions.Enabled {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://localhost:%d/", scheme, env.Port)
	if prefix := strings.Trim(env.EndpointPrefix, "/"); prefix != "" {
		url += prefix
	}
	return url
}

// convertEndpoint turns "users/:id" into "/users/{id}" plus its path parameters.
func convertEndpoint(endpoint string) (string, []Parameter) {
	var params []Parameter
	for _, match := range routeParam.FindAllStringSubmatch(endpoint, -1) {
		params = append(params, Parameter{
			Name:     match[1],
			In:       "path",
			Required: true,
			Schema:   Schema{Type: "string"},
		})
	}
	path := routeParam.ReplaceAllString(endpoint, "{$1}")
	return "/" + strings.TrimPrefix(path, "/"), params
}

func convertResponse(env *entities.Environment, response entities.RouteResponse) Response {
	description := response.Label
	if description == "" {
		description = http.StatusText(response.StatusCode)
	}

	out := Response{Description: description}

	contentType := ""
	for _, header := range append(append([]entities.Header{}, env.Headers...), response.Headers...) {
		if header.Key == "" {
			continue
		}
		if strings.EqualFold(header.Key, "Content-Type") {
			contentType = header.Value
			continue
		}
		if out.Headers == nil {
			out.Headers = map[string]Header{}
		}
		out.Headers[header.Key] = Header{Schema: Schema{Type: "string"}, Example: header.Value}
	}

	if contentType != "" {
		media := MediaType{}
		if response.Body != "" {
			media.Example = bodyExample(contentType, response.Body)
		}
		out.Content = map[string]MediaType{contentType: media}
	}
	return out
}

// bodyExample decodes JSON bodies so they are embedded as structured
// examples. Anything else, including templated JSON, stays a string.
func bodyExample(contentType, body string) any {
	if strings.Contains(contentType, "json") {
		var decoded any
		if err := json.Unmarshal([]byte(body), &decoded); err == nil {
			return decoded
		}
	}
	return body
}
