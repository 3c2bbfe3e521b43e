package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rallypoint/rallypoint-api/internal/handlers"
	"github.com/rallypoint/rallypoint-api/internal/mail"
	"github.com/rallypoint/rallypoint-api/internal/middleware"
	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"github.com/rallypoint/rallypoint-api/internal/services"
	"github.com/rallypoint/rallypoint-api/internal/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// fakeMailer records sent messages and can be told to fail.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []mail.Message
	failWith error
}

func (f *fakeMailer) Send(msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Sent() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mail.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeMailer) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mailer *fakeMailer
	issuer *token.Issuer
}

// setupTestEnv wires a fully routed server against an in-memory database,
// mirroring the wiring in cmd/server.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty in-memory
	// database, so pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.WaitlistEntry{},
		&models.HourLog{},
	))

	issuer, err := token.NewIssuer(token.IssuerConfig{
		Secret: testJWTSecret,
		Issuer: "rallypoint-test",
	})
	require.NoError(t, err)

	mailer := &fakeMailer{}
	notifier := mail.NewNotifier(mailer, "http://localhost:5173")

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	hourLogRepo := repository.NewHourLogRepository(db)

	authService := services.NewAuthService(userRepo, issuer, notifier)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo)
	hourLogService := services.NewHourLogService(hourLogRepo, eventRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, registrationService, issuer)
	eventHandler := handlers.NewEventHandler(eventService, registrationService)
	hourLogHandler := handlers.NewHourLogHandler(hourLogService)

	r := gin.New()

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgotpassword", authHandler.ForgotPassword)
	auth.PUT("/resetpassword/:token", authHandler.ResetPassword)

	users := api.Group("/users", middleware.RequireAuth(issuer))
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/my-events", userHandler.MyEvents)
	users.GET("/my-waitlist", userHandler.MyWaitlist)

	usersAdmin := users.Group("", middleware.RequireAdmin())
	usersAdmin.GET("", userHandler.ListUsers)
	usersAdmin.PUT("/:id/status", userHandler.UpdateUserStatus)
	usersAdmin.PUT("/:id", userHandler.UpdateUser)
	usersAdmin.DELETE("/:id", userHandler.DeleteUser)

	events := api.Group("/events")
	events.GET("", eventHandler.ListEvents)
	events.GET("/:id", eventHandler.GetEvent)

	eventsAuthed := events.Group("", middleware.RequireAuth(issuer))
	eventsAuthed.POST("/:id/register", eventHandler.Join)
	eventsAuthed.DELETE("/:id/unregister", eventHandler.Unregister)
	eventsAuthed.POST("/:id/waitlist", eventHandler.JoinWaitlist)

	eventsAdmin := eventsAuthed.Group("", middleware.RequireAdmin())
	eventsAdmin.POST("", eventHandler.CreateEvent)
	eventsAdmin.PUT("/:id", eventHandler.UpdateEvent)
	eventsAdmin.DELETE("/:id", eventHandler.DeleteEvent)

	hours := api.Group("/hours", middleware.RequireAuth(issuer))
	hours.POST("", hourLogHandler.LogHours)
	hours.GET("/my", hourLogHandler.MyHours)

	hoursAdmin := hours.Group("", middleware.RequireAdmin())
	hoursAdmin.GET("", hourLogHandler.ListHours)
	hoursAdmin.PUT("/:id/status", hourLogHandler.UpdateHourStatus)

	return &testEnv{
		router: r,
		db:     db,
		mailer: mailer,
		issuer: issuer,
	}
}

// createUser inserts a user directly and returns it with a session token.
func (e *testEnv) createUser(t *testing.T, email, password string, role models.Role, status models.AccountStatus) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Status:       status,
	}
	require.NoError(t, e.db.Create(user).Error)

	sessionToken, err := e.issuer.Generate(user.ID, string(user.Role))
	require.NoError(t, err)

	return user, sessionToken
}

func (e *testEnv) createVolunteer(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	return e.createUser(t, email, "password123", models.RoleVolunteer, models.StatusApproved)
}

func (e *testEnv) createAdmin(t *testing.T) (*models.User, string) {
	t.Helper()
	return e.createUser(t, "admin@example.com", "adminpass", models.RoleAdmin, models.StatusApproved)
}

func (e *testEnv) createEvent(t *testing.T, title string, slots int) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:          title,
		Date:           time.Now().Add(72 * time.Hour),
		Location:       "Community Center",
		SlotsAvailable: slots,
	}
	require.NoError(t, e.db.Create(event).Error)
	return event
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a Bearer credential.
func (e *testEnv) request(t *testing.T, method, path string, body any, sessionToken string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var errSMTPDown = errors.New("smtp connection refused")

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, code, body["code"], w.Body.String())
}
