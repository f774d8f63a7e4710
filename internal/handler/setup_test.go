package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/act-survey-api/internal/catalog"
	"github.com/noah-isme/act-survey-api/internal/config"
	"github.com/noah-isme/act-survey-api/internal/handler"
	"github.com/noah-isme/act-survey-api/internal/middleware"
	"github.com/noah-isme/act-survey-api/internal/models"
	"github.com/noah-isme/act-survey-api/internal/repository"
	"github.com/noah-isme/act-survey-api/internal/router"
	"github.com/noah-isme/act-survey-api/internal/service"
)

const (
	testAdminUser = "admin"
	testAdminPass = "s3cret"
)

type surveyApp struct {
	app *fiber.App
	db  *gorm.DB
}

func setupSurveyApp(t *testing.T) surveyApp {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Response{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	repo := repository.NewResponseRepository(db)
	reports := service.NewReportService(repo, nil, 0, logger)
	surveys, err := service.NewSurveyService(service.NewResponseScorer(catalog.Default(), validate), repo, nil, reports, logger)
	require.NoError(t, err)

	cfg := config.Config{AppName: "Test", AppEnv: "test", AdminUsername: testAdminUser, AdminPassword: testAdminPass}

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		SurveyHandler: handler.NewSurveyHandler(surveys, logger),
		StatsHandler:  handler.NewStatsHandler(reports, logger),
		AdminHandler:  handler.NewAdminHandler(surveys, reports, logger),
		Database:      sqlDB,
		AdminAuth:     middleware.AdminAuth(middleware.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}),
	})

	return surveyApp{app: app, db: db}
}

func (s surveyApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s surveyApp) count(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Model(&models.Response{}).Count(&count).Error)
	return count
}

func formRequest(path string, values url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func answers(name string, codes ...string) url.Values {
	values := url.Values{}
	if name != "" {
		values.Set("name", name)
	}
	values.Set("age", "30")
	values.Set("gender", "F")
	values.Set("phone", "123")
	for i, code := range codes {
		values.Set(fmt.Sprintf("q%d", i+1), code)
	}
	return values
}

func withAdmin(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(testAdminUser+":"+testAdminPass)))
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
