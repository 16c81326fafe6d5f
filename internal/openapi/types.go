package openapi

// Document is the subset of an OpenAPI 3.0 document this package reads and writes.
type Document struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Servers []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem describes the operations available on a path.
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// operations returns the defined operations keyed by lower-case method,
// in a fixed order.
func (p PathItem) operations() []methodOperation {
	candidates := []methodOperation{
		{"get", p.Get},
		{"post", p.Post},
		{"put", p.Put},
		{"patch", p.Patch},
		{"delete", p.Delete},
		{"head", p.Head},
		{"options", p.Options},
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c.op != nil {
			out = append(out, c)
		}
	}
	return out
}

func (p *PathItem) set(method string, op *Operation) bool {
	switch method {
	case "get":
		p.Get = op
	case "post":
		p.Post = op
	case "put":
		p.Put = op
	case "patch":
		p.Patch = op
	case "delete":
		p.Delete = op
	case "head":
		p.Head = op
	case "options":
		p.Options = op
	default:
		return false
	}
	return true
}

type methodOperation struct {
	method string
	op     *Operation
}

type Operation struct {
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	In       string `json:"in" yaml:"in"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Headers     map[string]Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type Header struct {
	Schema  Schema `json:"schema" yaml:"schema"`
	Example any    `json:"example,omitempty" yaml:"example,omitempty"`
}

type MediaType struct {
	Schema  *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any     `json:"example,omitempty" yaml:"example,omitempty"`
}

type Schema struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}
