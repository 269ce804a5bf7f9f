package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petportal/booking-api/internal/middleware"
	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/wizard"
)

const testSecret = "test-secret"

type stubSource struct {
	mu       sync.Mutex
	clinics  []model.Clinic
	services []model.Service
	shifts   []model.Shift
	pets     []model.Pet
}

func (s *stubSource) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clinics, nil
}

func (s *stubSource) ListServices(ctx context.Context, clinicID uuid.UUID) ([]model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services, nil
}

func (s *stubSource) ListShifts(ctx context.Context, clinicID uuid.UUID) ([]model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shifts, nil
}

func (s *stubSource) ListPets(ctx context.Context, ownerID uuid.UUID) ([]model.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets, nil
}

type stubBooker struct{}

func (stubBooker) CreateBooking(ctx context.Context, ownerID uuid.UUID, req *model.BookingRequest) (*model.Booking, error) {
	b := &model.Booking{OwnerID: ownerID, ClinicID: req.ClinicID, ShiftID: req.ShiftID, Date: req.Date, Status: model.BookingStatusPending}
	b.ID = uuid.New()
	return b, nil
}

type testEnv struct {
	engine *gin.Engine
	clinic model.Clinic
	shift  model.Shift
	svc    model.Service
	pet    model.Pet
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clinic := model.Clinic{Base: model.Base{ID: uuid.New()}, Name: "Happy Paws"}
	shift := model.Shift{Base: model.Base{ID: uuid.New()}, ClinicID: clinic.ID, Name: model.ShiftMorning, StartTime: "08:00", EndTime: "12:00"}
	svc := model.Service{Base: model.Base{ID: uuid.New()}, ClinicID: clinic.ID, Name: "Grooming", Price: 150}
	pet := model.Pet{Base: model.Base{ID: uuid.New()}, Name: "Rex"}

	source := &stubSource{
		clinics:  []model.Clinic{clinic},
		services: []model.Service{svc},
		shifts:   []model.Shift{shift},
		pets:     []model.Pet{pet},
	}

	cfg := wizard.DefaultManagerConfig()
	cfg.Session.ResetDelay = time.Minute // keep succeeded state visible for assertions
	manager := wizard.NewManager(source, stubBooker{}, wizard.SystemClock{}, cfg, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.NewAuthMiddleware(testSecret).Authenticate())
	NewHandler(manager).RegisterRoutes(api)

	return &testEnv{engine: engine, clinic: clinic, shift: shift, svc: svc, pet: pet}
}

func signToken(t *testing.T, ownerID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   ownerID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

// waitCatalogs polls the state endpoint until no catalog is still loading.
func (e *testEnv) waitCatalogs(t *testing.T, sessionID, token string) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, env := e.request(t, "GET", "/api/v1/wizard/"+sessionID, nil, token)
		for _, key := range []string{"clinics", "services", "shifts", "pets"} {
			catalog, ok := env.Data[key].(map[string]interface{})
			if !ok {
				return false
			}
			if loading, _ := catalog["loading"].(bool); loading {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func TestWizardFlow(t *testing.T) {
	e := newTestEnv(t)
	token := signToken(t, uuid.New())
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.DateLayout)

	code, env := e.request(t, "POST", "/api/v1/wizard", nil, token)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "success", env.Status)
	sessionID, _ := env.Data["id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, float64(1), env.Data["step"])

	e.waitCatalogs(t, sessionID, token)

	base := "/api/v1/wizard/" + sessionID

	code, env = e.request(t, "PUT", base+"/clinic", gin.H{"clinic_id": e.clinic.ID.String()}, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Data["can_advance"])

	code, _ = e.request(t, "POST", base+"/advance", nil, token)
	require.Equal(t, http.StatusOK, code)

	e.waitCatalogs(t, sessionID, token)

	code, env = e.request(t, "PUT", base+"/schedule", gin.H{"date": tomorrow, "shift_id": e.shift.ID.String()}, token)
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = e.request(t, "POST", base+"/advance", nil, token)
	require.Equal(t, http.StatusOK, code)

	code, env = e.request(t, "POST", base+"/services/toggle", gin.H{"service_id": e.svc.ID.String()}, token)
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = e.request(t, "POST", base+"/advance", nil, token)
	require.Equal(t, http.StatusOK, code)

	code, env = e.request(t, "POST", base+"/assignments/toggle", gin.H{"pet_id": e.pet.ID.String(), "service_id": e.svc.ID.String()}, token)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, float64(150), env.Data["total"])

	code, env = e.request(t, "POST", base+"/advance", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), env.Data["step"])

	code, env = e.request(t, "POST", base+"/submit", nil, token)
	require.Equal(t, http.StatusOK, code, env.Message)
	submission, ok := env.Data["submission"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "succeeded", submission["status"])
	assert.NotEmpty(t, submission["booking_id"])
}

func TestWizardRequiresToken(t *testing.T) {
	e := newTestEnv(t)

	code, env := e.request(t, "POST", "/api/v1/wizard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "error", env.Status)
}

func TestWizardSessionIsOwnerScoped(t *testing.T) {
	e := newTestEnv(t)
	owner := signToken(t, uuid.New())
	stranger := signToken(t, uuid.New())

	code, env := e.request(t, "POST", "/api/v1/wizard", nil, owner)
	require.Equal(t, http.StatusCreated, code)
	sessionID, _ := env.Data["id"].(string)

	code, _ = e.request(t, "GET", "/api/v1/wizard/"+sessionID, nil, stranger)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWizardErrorStatusCodes(t *testing.T) {
	e := newTestEnv(t)
	token := signToken(t, uuid.New())

	code, env := e.request(t, "POST", "/api/v1/wizard", nil, token)
	require.Equal(t, http.StatusCreated, code)
	sessionID, _ := env.Data["id"].(string)
	base := "/api/v1/wizard/" + sessionID
	e.waitCatalogs(t, sessionID, token)

	// Gated advance: the first step needs a clinic.
	code, _ = e.request(t, "POST", base+"/advance", nil, token)
	assert.Equal(t, http.StatusConflict, code)

	// Toggling before picking a clinic.
	code, _ = e.request(t, "POST", base+"/services/toggle", gin.H{"service_id": uuid.New().String()}, token)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = e.request(t, "PUT", base+"/clinic", gin.H{"clinic_id": e.clinic.ID.String()}, token)
	require.Equal(t, http.StatusOK, code)
	e.waitCatalogs(t, sessionID, token)

	// A service the clinic does not offer.
	code, _ = e.request(t, "POST", base+"/services/toggle", gin.H{"service_id": uuid.New().String()}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// Malformed body.
	code, _ = e.request(t, "POST", base+"/services/toggle", gin.H{"service_id": "not-a-uuid"}, token)
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown session.
	code, _ = e.request(t, "GET", "/api/v1/wizard/"+uuid.New().String(), nil, token)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWizardDiscard(t *testing.T) {
	e := newTestEnv(t)
	token := signToken(t, uuid.New())

	code, env := e.request(t, "POST", "/api/v1/wizard", nil, token)
	require.Equal(t, http.StatusCreated, code)
	sessionID, _ := env.Data["id"].(string)

	code, _ = e.request(t, "DELETE", fmt.Sprintf("/api/v1/wizard/%s", sessionID), nil, token)
	assert.Equal(t, http.StatusOK, code)

	code, _ = e.request(t, "GET", "/api/v1/wizard/"+sessionID, nil, token)
	assert.Equal(t, http.StatusNotFound, code)
}
