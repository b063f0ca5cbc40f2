package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studioclass/review-api/internal/config"
	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/handler"
	"github.com/studioclass/review-api/internal/middleware"
	"github.com/studioclass/review-api/internal/repository"
	"github.com/studioclass/review-api/internal/router"
	"github.com/studioclass/review-api/internal/service"
	"github.com/studioclass/review-api/pkg/storage"
)

// apiEnvelope mirrors utils.APIResponse with a raw data payload so each test
// can decode the part it cares about.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testApp struct {
	app *fiber.App
	hub *service.RealtimeHub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := config.Config{
		AppName:         "review-api-test",
		AppEnv:          "test",
		JWTSecret:       "handler-test-secret",
		TokenTTL:        time.Hour,
		MaxUploadSizeMB: 1,
		UploadDir:       t.TempDir(),
	}

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	fileStorage, err := storage.NewLocal(cfg.UploadDir, logger)
	require.NoError(t, err)

	userRepo := repository.NewStaticUserRepository(repository.SeedUsers())
	submissionRepo := repository.NewMemorySubmissionRepository()

	hub := service.NewRealtimeHub(logger)
	scorer := service.NewCannedScoringService(logger)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, scorer, hub, fileStorage, validate, logger)
	statsService := service.NewStatsService(submissionRepo, nil, 0, logger)
	uploadService := service.NewUploadService(fileStorage, cfg.MaxUploadSizeMB, logger)

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		WebhookHandler:    handler.NewWebhookHandler(submissionService, logger),
		StatsHandler:      handler.NewStatsHandler(statsService, logger),
		UploadHandler:     handler.NewUploadHandler(uploadService, logger),
		RealtimeHandler:   handler.NewRealtimeHandler(hub, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		UploadDir:         fileStorage.Dir(),
	})

	return &testApp{app: app, hub: hub}
}

// doJSON performs a request against the app and decodes the response envelope.
func (ta *testApp) doJSON(t *testing.T, method, target, token string, payload interface{}) (*http.Response, apiEnvelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	_ = response.Body.Close()

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)

	return response, envelope
}

func (ta *testApp) loginToken(t *testing.T, username string) string {
	t.Helper()

	response, envelope := ta.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: username,
		Password: "admin123",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &login))
	require.NotEmpty(t, login.Token)

	return login.Token
}

func (ta *testApp) createSubmission(t *testing.T, payload dto.WebhookSubmissionRequest) string {
	t.Helper()

	response, envelope := ta.doJSON(t, http.MethodPost, "/api/webhook/submission", "", payload)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var ack dto.WebhookAck
	require.NoError(t, json.Unmarshal(envelope.Data, &ack))
	require.NotEmpty(t, ack.SubmissionID)

	return ack.SubmissionID
}
