package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moxie/app"
	"moxie/config"
	"moxie/database"
	"moxie/handlers"
	"moxie/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestApp wires the note handlers on an in-memory database
func setupTestApp(t *testing.T) (*fiber.App, *database.Provider) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider, err := database.NewProvider(context.Background(), "sqlite:///:memory:",
		database.WithCreateSchema(true),
		database.WithLogger(logger),
	)
	require.NoError(t, err, "Failed to initialize test database")
	t.Cleanup(func() { provider.Close() })

	cfg := &config.Config{
		DatabaseURL: "sqlite:///:memory:",
		Env:         "test",
		LogLevel:    "error",
		Port:        "3000",
		CORSOrigins: "*",
	}
	application := app.New(provider.Notes(), cfg, logger)

	fiberApp := fiber.New()
	fiberApp.Get("/api/notes", handlers.GetNotes(application))
	fiberApp.Get("/api/notes/:id", handlers.GetNote(application))
	fiberApp.Post("/api/notes", handlers.CreateNote(application))

	return fiberApp, provider
}

func seedNote(t *testing.T, provider *database.Provider, title, content string) *models.Note {
	t.Helper()

	note, err := provider.Notes().Create(context.Background(), models.NewNote{Title: &title, Content: &content})
	require.NoError(t, err)
	return note
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestGetNotes(t *testing.T) {
	fiberApp, provider := setupTestApp(t)

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["notes"])

	first := seedNote(t, provider, "Awesome", "Awesome content")
	second := seedNote(t, provider, "Another title", "Another content")

	status, body = doRequest(t, fiberApp, http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusOK, status)

	notes := body["notes"].([]interface{})
	require.Len(t, notes, 2)
	assert.Equal(t, float64(first.ID), notes[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(second.ID), notes[1].(map[string]interface{})["id"])
	assert.Equal(t, "Another content", notes[1].(map[string]interface{})["content"])
}

func TestGetNote(t *testing.T) {
	fiberApp, provider := setupTestApp(t)
	existing := seedNote(t, provider, "Awesome", "Awesome content")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedError  string
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "Non numeric id",
			id:             "abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "id must be numeric",
		},
		{
			name:           "Id out of range",
			id:             "99999999999999999999",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "id is out of range",
		},
		{
			name:           "Unknown note",
			id:             "404",
			expectedStatus: http.StatusNotFound,
			expectedError:  "Note not found",
		},
		{
			name:           "Existing note",
			id:             "1",
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				note := body["note"].(map[string]interface{})
				assert.Equal(t, float64(existing.ID), note["id"])
				assert.Equal(t, "Awesome", note["title"])
				assert.Equal(t, "Awesome content", note["content"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, fiberApp, http.MethodGet, "/api/notes/"+tt.id, "")

			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedError != "" {
				assert.Contains(t, body["error"], tt.expectedError)
			}
			if tt.validateBody != nil {
				tt.validateBody(t, body)
			}
		})
	}
}

func TestCreateNote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
		expectStored   bool
	}{
		{
			name:           "Valid note",
			body:           `{"title":"Test title","content":"Test content"}`,
			expectedStatus: http.StatusCreated,
			expectStored:   true,
		},
		{
			name:           "Blank title",
			body:           `{"title":"   ","content":"Test content"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  database.NonBlankTitle,
		},
		{
			name:           "Empty content",
			body:           `{"title":"Test title","content":""}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  database.NonBlankContent,
		},
		{
			name:           "Missing content",
			body:           `{"title":"Test title"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "integrity error",
		},
		{
			name:           "Unknown field",
			body:           `{"title":"Test title","content":"Test content","author":"me"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "Trailing data after the note",
			body:           `{"title":"Test title","content":"Test content"} {"title":"junk"`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "Malformed JSON",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp, provider := setupTestApp(t)

			status, body := doRequest(t, fiberApp, http.MethodPost, "/api/notes", tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedError != "" {
				assert.Contains(t, body["error"], tt.expectedError)
			}

			notes, err := provider.Notes().FindAll(context.Background())
			require.NoError(t, err)

			if tt.expectStored {
				require.Len(t, notes, 1)
				note := body["note"].(map[string]interface{})
				assert.Equal(t, float64(notes[0].ID), note["id"])
				assert.Equal(t, "Test title", note["title"])
			} else {
				assert.Empty(t, notes)
			}
		})
	}
}
