// Package docs serves the OpenAPI description of the HTTP API and a
// Swagger UI page that renders it.
package docs

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Document is a minimal OpenAPI 3 document
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Tags       []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version" yaml:"version"`
}

type Tag struct {
	Name string `json:"name" yaml:"name"`
}

type PathItem struct {
	Get *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put *Operation `json:"put,omitempty" yaml:"put,omitempty"`
}

type Operation struct {
	Tags       []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary    string              `json:"summary" yaml:"summary"`
	Parameters []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses  map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description" yaml:"description"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
	Schema      Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema Schema `json:"schema" yaml:"schema"`
}

type Schema struct {
	Ref         string            `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern     string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Example     interface{}       `json:"example,omitempty" yaml:"example,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty" yaml:"items,omitempty"`
}

type Components struct {
	Schemas map[string]Schema `json:"schemas" yaml:"schemas"`
}

var symbolParam = Parameter{
	Name:        "symbol",
	In:          "path",
	Required:    true,
	Description: "Stock symbol (e.g. AAPL for Apple)",
	Example:     "AAPL",
	Schema:      Schema{Type: "string", Pattern: `^[^\s/?#]{1,64}$`},
}

func jsonBody(description, ref string) Response {
	return Response{
		Description: description,
		Content: map[string]MediaType{
			"application/json": {Schema: Schema{Ref: "#/components/schemas/" + ref}},
		},
	}
}

func errorBody(description string) Response {
	return jsonBody(description, "Error")
}

func number(description string, example float64) Schema {
	return Schema{Type: "number", Description: description, Example: example}
}

// NewDocument describes the stock API
func NewDocument(version string) *Document {
	return &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Advanced Stock Price Checker API",
			Description: "Polls Finnhub for activated symbols and serves prices with a moving average",
			Version:     version,
		},
		Tags: []Tag{{Name: "stock"}, {Name: "health"}},
		Paths: map[string]PathItem{
			"/stock/{symbol}": {
				Get: &Operation{
					Tags:       []string{"stock"},
					Summary:    "Get the current price, last update and moving average",
					Parameters: []Parameter{symbolParam},
					Responses: map[string]Response{
						"200": jsonBody("Current stock data", "StockData"),
						"400": errorBody("Invalid data from Finnhub API"),
						"404": errorBody("Symbol not found or no price data"),
						"500": errorBody("Error retrieving stock price"),
					},
				},
				Put: &Operation{
					Tags:       []string{"stock"},
					Summary:    "Activate a symbol for periodic polling",
					Parameters: []Parameter{symbolParam},
					Responses: map[string]Response{
						"200": jsonBody("Symbol activated", "Message"),
						"400": errorBody("Error activating symbol"),
					},
				},
			},
			"/stock/{symbol}/quote": {
				Get: &Operation{
					Tags:       []string{"stock"},
					Summary:    "Get the current stock price",
					Parameters: []Parameter{symbolParam},
					Responses: map[string]Response{
						"200": jsonBody("The current stock price and other data", "StockPrice"),
						"400": errorBody("Invalid data from Finnhub API"),
						"500": errorBody("Error retrieving stock price"),
					},
				},
			},
			"/health": {
				Get: &Operation{
					Tags:      []string{"health"},
					Summary:   "Liveness check",
					Responses: map[string]Response{"200": {Description: "Alive"}},
				},
			},
			"/health/ready": {
				Get: &Operation{
					Tags:    []string{"health"},
					Summary: "Readiness check",
					Responses: map[string]Response{
						"200": {Description: "Ready"},
						"503": {Description: "Database unavailable"},
					},
				},
			},
		},
		Components: Components{
			Schemas: map[string]Schema{
				"StockData": {
					Type: "object",
					Properties: map[string]Schema{
						"currentPrice":  number("Current price", 234.795),
						"lastUpdate":    {Type: "string", Format: "date-time", Example: "2024-11-26T17:04:17.000Z"},
						"movingAverage": number("Average of the last 10 stored prices", 233.12),
					},
				},
				"StockPrice": {
					Type: "object",
					Properties: map[string]Schema{
						"currentPrice":       number("Current price", 234.795),
						"change":             number("Change compared to the previous closing price", 1.925),
						"percentChange":      number("Change in percentage compared to the previous closing price", 0.8266),
						"highPrice":          number("Highest price of the day", 235.57),
						"lowPrice":           number("Lowest price of the day", 232.9),
						"openPrice":          number("Opening price of the day", 232.9),
						"previousClosePrice": number("Previous closing price", 232.87),
						"timestamp":          {Type: "integer", Description: "Timestamp in seconds", Example: 1732640657},
					},
				},
				"Message": {
					Type:       "object",
					Properties: map[string]Schema{"message": {Type: "string", Example: "Symbol 'AAPL' activated successfully"}},
				},
				"Error": {
					Type:        "object",
					Description: "Every error is wrapped in an `error` object. Read the human-readable text from `error.message` and the machine code from `error.code`.",
					Example: map[string]interface{}{
						"error": map[string]interface{}{
							"code":       "NOT_FOUND",
							"message":    "No price data available for symbol 'AAPL'",
							"request_id": "3f8a2c1e-7d4b-4e0a-9c1f-5b6d7e8f9a0b",
							"timestamp":  "2024-11-26T17:04:17Z",
						},
					},
					Properties: map[string]Schema{
						"error": {
							Type: "object",
							Properties: map[string]Schema{
								"code":       {Type: "string", Description: "Machine-readable error code", Example: "NOT_FOUND"},
								"message":    {Type: "string", Description: "Human-readable error message", Example: "Symbol 'AAPL' not found"},
								"request_id": {Type: "string", Description: "Same value as the X-Request-ID response header"},
								"timestamp":  {Type: "string", Format: "date-time"},
								"fields": {
									Type:        "array",
									Description: "Per-parameter details on validation errors",
									Items: &Schema{
										Type: "object",
										Properties: map[string]Schema{
											"field":   {Type: "string"},
											"message": {Type: "string"},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// Handler serves the UI page and the document in JSON and YAML
type Handler struct {
	basePath string
	jsonDoc  []byte
	yamlDoc  []byte
}

// NewHandler renders doc once; basePath is where the UI page is mounted
func NewHandler(basePath string, doc *Document) (*Handler, error) {
	jsonDoc, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	yamlDoc, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	return &Handler{
		basePath: strings.TrimRight(basePath, "/"),
		jsonDoc:  jsonDoc,
		yamlDoc:  yamlDoc,
	}, nil
}

// JSONPath is the URL of the JSON document
func (h *Handler) JSONPath() string {
	return h.basePath + "/openapi.json"
}

// YAMLPath is the URL of the YAML document
func (h *Handler) YAMLPath() string {
	return h.basePath + "/openapi.yaml"
}

func (h *Handler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.jsonDoc)
}

func (h *Handler) ServeYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(h.yamlDoc)
}

var uiTemplate = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Advanced Stock Price Checker API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      SwaggerUIBundle({ url: {{.}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

func (h *Handler) ServeUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uiTemplate.Execute(w, h.JSONPath()); err != nil {
		log.Error().Err(err).Msg("Failed to render Swagger UI")
	}
}
