package entities

import "time"

type TLSType string

const (
	TLSTypeCert TLSType = "CERT"
	TLSTypePFX  TLSType = "PFX"
)

type RulesOperator string

const (
	RulesOperatorOR  RulesOperator = "OR"
	RulesOperatorAND RulesOperator = "AND"
)

// Environment is the current-schema shape of an environment document.
// Older shapes only exist as raw JSON and go through migrations first.
type Environment struct {
	UUID              string     `json:"uuid" validate:"required"`
	LastMigration     int        `json:"lastMigration" validate:"gte=0"`
	Name              string     `json:"name"`
	EndpointPrefix    string     `json:"endpointPrefix"`
	Latency           int        `json:"latency" validate:"gte=0"`
	Port              int        `json:"port" validate:"gte=0,lte=65535"`
	Hostname          string     `json:"hostname"`
	Routes            []Route    `json:"routes" validate:"dive"`
	ProxyMode         bool       `json:"proxyMode"`
	ProxyHost         string     `json:"proxyHost"`
	ProxyRemovePrefix bool       `json:"proxyRemovePrefix"`
	TLSOptions        TLSOptions `json:"tlsOptions"`
	CORS              bool       `json:"cors"`
	Headers           []Header   `json:"headers" validate:"dive"`
	ProxyReqHeaders   []Header   `json:"proxyReqHeaders" validate:"dive"`
	ProxyResHeaders   []Header   `json:"proxyResHeaders" validate:"dive"`
}

type TLSOptions struct {
	Enabled    bool    `json:"enabled"`
	Type       TLSType `json:"type" validate:"oneof=CERT PFX"`
	PFXPath    string  `json:"pfxPath"`
	CertPath   string  `json:"certPath"`
	KeyPath    string  `json:"keyPath"`
	CAPath     string  `json:"caPath"`
	Passphrase string  `json:"passphrase"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Route struct {
	UUID               string          `json:"uuid" validate:"required"`
	Documentation      string          `json:"documentation"`
	Method             string          `json:"method" validate:"oneof=get post put patch delete head options all"`
	Endpoint           string          `json:"endpoint"`
	Responses          []RouteResponse `json:"responses" validate:"min=1,dive"`
	Enabled            bool            `json:"enabled"`
	RandomResponse     bool            `json:"randomResponse"`
	SequentialResponse bool            `json:"sequentialResponse"`
}

type RouteResponse struct {
	UUID              string         `json:"uuid" validate:"required"`
	Body              string         `json:"body"`
	Latency           int            `json:"latency" validate:"gte=0"`
	StatusCode        int            `json:"statusCode" validate:"gte=100,lte=599"`
	Label             string         `json:"label"`
	Headers           []Header       `json:"headers" validate:"dive"`
	FilePath          string         `json:"filePath"`
	SendFileAsBody    bool           `json:"sendFileAsBody"`
	Rules             []ResponseRule `json:"rules" validate:"dive"`
	RulesOperator     RulesOperator  `json:"rulesOperator" validate:"oneof=OR AND"`
	DisableTemplating bool           `json:"disableTemplating"`
	FallbackTo404     bool           `json:"fallbackTo404"`
	Default           bool           `json:"default"`
}

type ResponseRule struct {
	Target   string `json:"target" validate:"oneof=body query header cookie params request_number"`
	Modifier string `json:"modifier"`
	Value    string `json:"value"`
	Operator string `json:"operator" validate:"oneof=equals regex null empty_array"`
}

// EnvironmentRecord is the persisted form of an environment. The full
// current-schema document is stored as JSON next to a few indexed columns.
type EnvironmentRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"uniqueIndex;size:36" json:"uuid"`
	Name          string    `gorm:"size:256" json:"name"`
	LastMigration int       `json:"last_migration"`
	Port          int       `json:"port"`
	Document      string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (EnvironmentRecord) TableName() string {
	return "environments"
}
