package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource(name, bytes.NewReader(raw)))
	schema, err := compiler.Compile(name)
	require.NoError(t, err)
	return schema
}

func validatePayload(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.NoError(t, schema.Validate(payload), string(raw))
}

func TestStatsPayloadContract(t *testing.T) {
	s := setupSurveyApp(t)
	schema := compileSchema(t, "stats.schema.json")

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validatePayload(t, schema, resp)

	require.Equal(t, fiber.StatusCreated, s.do(t, formRequest("/submit", answers("Li", "C", "C", "C", "C", "C"))).StatusCode)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validatePayload(t, schema, resp)
}

func TestSubmissionResultContract(t *testing.T) {
	s := setupSurveyApp(t)
	schema := compileSchema(t, "submission_result.schema.json")

	resp := s.do(t, formRequest("/api/v1/survey/submit", answers("Li", "B", "C", "D", "E", "A")))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	validatePayload(t, schema, resp)
}
