package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/backend/spec"
)

type document struct {
	OpenAPI string                    `yaml:"openapi"`
	Paths   map[string]map[string]any `yaml:"paths"`
}

// TestOpenAPI_describesEveryRoute keeps the served document in step with the
// routes the handler package mounts.
func TestOpenAPI_describesEveryRoute(t *testing.T) {
	var doc document
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	routes := map[string][]string{
		"/healthz":                       {"get"},
		"/openapi.yaml":                  {"get"},
		"/trips":                         {"get", "post"},
		"/trips/{id}":                    {"get", "put", "delete"},
		"/trips/{id}/status":             {"post"},
		"/trips/{id}/members":            {"get", "post"},
		"/trips/{id}/members/{memberID}": {"patch", "delete"},
		"/calendar/holidays":             {"get"},
		"/calendar/countries":            {"get", "post"},
		"/calendar/countries/{code}":     {"delete"},
		"/calendar/custom-days":          {"post"},
		"/calendar/custom-days/{id}":     {"delete"},
		"/calendar/{year}.ics":           {"get"},
		"/planning/month":                {"get"},
		"/planning/quarter":              {"get"},
		"/planning/year":                 {"get"},
		"/planning/summary":              {"get"},
		"/planning/events":               {"post"},
		"/export":                        {"get"},
	}

	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "missing path %s", path) {
			continue
		}
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s has no %s operation", path, m)
		}
	}
	assert.Len(t, doc.Paths, len(routes))
}
