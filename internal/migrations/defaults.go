package migrations

import (
	"github.com/google/uuid"

	"github.com/mrlokans/envport/internal/entities"
)

const (
	DefaultPort     = 3000
	DefaultHostname = "0.0.0.0"
)

// NewEnvironment returns an empty environment in the current schema.
func NewEnvironment(name string) *entities.Environment {
	return &entities.Environment{
		UUID:            uuid.NewString(),
		LastMigration:   HighestMigrationID,
		Name:            name,
		Port:            DefaultPort,
		Hostname:        DefaultHostname,
		Routes:          []entities.Route{},
		TLSOptions:      entities.TLSOptions{Type: entities.TLSTypeCert},
		CORS:            true,
		Headers:         []entities.Header{{Key: "Content-Type", Value: "application/json"}},
		ProxyReqHeaders: []entities.Header{{}},
		ProxyResHeaders: []entities.Header{{}},
	}
}

// NewRoute returns a GET route with a single default 200 response.
func NewRoute(endpoint string) entities.Route {
	return entities.Route{
		UUID:      uuid.NewString(),
		Method:    "get",
		Endpoint:  endpoint,
		Responses: []entities.RouteResponse{NewRouteResponse(200, true)},
		Enabled:   true,
	}
}

func NewRouteResponse(statusCode int, isDefault bool) entities.RouteResponse {
	return entities.RouteResponse{
		UUID:          uuid.NewString(),
		StatusCode:    statusCode,
		Headers:       []entities.Header{},
		Rules:         []entities.ResponseRule{},
		RulesOperator: entities.RulesOperatorOR,
		Default:       isDefault,
	}
}

// NewDemoEnvironment is added on first load when the store is empty.
func NewDemoEnvironment() *entities.Environment {
	env := NewEnvironment("Demo API")

	users := NewRoute("users")
	users.Documentation = "List users"
	users.Responses[0].Body = `[{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]`

	user := NewRoute("users/:id")
	user.Documentation = "Get a user"
	user.Responses[0].Body = `{"id": 1, "name": "Alice"}`
	notFound := NewRouteResponse(404, false)
	notFound.Label = "Unknown user"
	notFound.Body = `{"error": "not found"}`
	user.Responses = append(user.Responses, notFound)

	create := NewRoute("users")
	create.Method = "post"
	create.Documentation = "Create a user"
	create.Responses[0].StatusCode = 201

	env.Routes = append(env.Routes, users, user, create)
	return env
}
