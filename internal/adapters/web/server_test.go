package web

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bnema/motorsense/internal/adapters/store/sqlite"
	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type harness struct {
	t        *testing.T
	server   *Server
	handler  http.Handler
	sessions *sqlite.SessionStore
	clock    fixedClock
	cookie   *http.Cookie

	auth       *mocks.MockAuthenticator
	registry   *mocks.MockVehicleRegistry
	vision     *mocks.MockVisionAnalyzer
	parts      *mocks.MockPartsDiscoverer
	roadmap    *mocks.MockRoadmapGenerator
	diagnoser  *mocks.MockDiagnoser
	identifier *mocks.MockPartIdentifier
	tuner      *mocks.MockECUTuner
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()

	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	sessions, err := sqlite.Open(context.Background(), sqlite.MemoryPath, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	h := &harness{
		t:          t,
		sessions:   sessions,
		clock:      clock,
		auth:       mocks.NewMockAuthenticator(t),
		registry:   mocks.NewMockVehicleRegistry(t),
		vision:     mocks.NewMockVisionAnalyzer(t),
		parts:      mocks.NewMockPartsDiscoverer(t),
		roadmap:    mocks.NewMockRoadmapGenerator(t),
		diagnoser:  mocks.NewMockDiagnoser(t),
		identifier: mocks.NewMockPartIdentifier(t),
		tuner:      mocks.NewMockECUTuner(t),
	}

	notifier := RequestNotifier{}
	services := Services{
		Analysis: application.NewAnalysisService(h.vision, h.parts, h.roadmap, notifier, nil),
		Chat:     application.NewChatService(h.diagnoser, nil),
		Tuning:   application.NewTuningService(h.tuner, notifier, nil),
		Intake:   application.NewIntakeService(h.registry, notifier, h.clock, nil),
		Identify: application.NewIdentifyService(h.identifier, notifier, nil),
		Accounts: h.auth,
	}

	opts.Clock = h.clock
	server, err := NewServer(services, sessions, opts, nil)
	require.NoError(t, err)
	h.server = server
	h.handler = server.Handler()

	return h
}

// do sends the request with the visitor's cookie and keeps any new one.
func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	h.t.Helper()

	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			h.cookie = c
		}
	}

	return rec
}

func (h *harness) get(target string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (h *harness) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func corolla() domain.VehicleDescriptor {
	return domain.VehicleDescriptor{
		VehicleType: "car",
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        "2018",
		Mileage:     "65000",
	}
}

type sseEvent struct {
	Name string
	Data string
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()

	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.Name != "" {
				events = append(events, current)
			}
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())

	return events
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.get("/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStaticStylesheetIsServed(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.get("/static/style.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestFirstVisitCreatesSessionCookie(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.cookie)
	assert.True(t, h.cookie.HttpOnly)

	stored, err := h.sessions.Get(context.Background(), h.cookie.Value)
	require.NoError(t, err)
	assert.False(t, stored.Auth.IsAuthenticated())

	// The same cookie is reused rather than replaced.
	first := h.cookie.Value
	rec = h.get("/")
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, first, h.cookie.Value)
}

func TestPagesWithoutVehicleShowMissingPanel(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "mission selection", target: "/mission-selection?brand=Toyota"},
		{name: "operational category", target: "/operational-category"},
		{name: "critical diagnosis", target: "/critical-diagnosis?vehicleType=car"},
		{name: "results without problem key", target: "/results?" + domain.EncodeQuery(corolla()).Encode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{})

			rec := h.get(tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Missing Information")
			assert.Contains(t, body, "Start Over")
			assert.Contains(t, body, `href="/analyze"`)
		})
	}
}

func TestMissionSelectionCarriesQueryIntoLinks(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.get("/mission-selection?" + domain.EncodeQuery(corolla()).Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Repair &amp; Ops")
	assert.Contains(t, body, "Tune &amp; Kinetic")
	assert.Contains(t, body, "/ecu-tuning?")
	assert.Contains(t, body, "mission=tune")
	assert.Contains(t, body, "/operational-category?")
	assert.Contains(t, body, "mission=repair")
}

func TestLoginStoresSessionServerSide(t *testing.T) {
	h := newHarness(t, Options{})
	h.auth.EXPECT().
		Login(mock.Anything, "grace@example.com", "secret").
		Return(domain.AuthSession{
			Token: "jwt-token",
			User:  &domain.User{ID: 7, FullName: "Grace Hopper", Email: "grace@example.com"},
		}, nil).
		Once()

	rec := h.postForm("/login", url.Values{"email": {"grace@example.com"}, "password": {"secret"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/analyze", rec.Header().Get("Location"))
	require.NotNil(t, h.cookie)

	stored, err := h.sessions.Get(context.Background(), h.cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", stored.Auth.Token)
	require.NotNil(t, stored.Auth.User)
	assert.Equal(t, "Grace Hopper", stored.Auth.User.FullName)

	page := h.get("/")
	assert.Contains(t, page.Body.String(), "Grace Hopper")
	assert.Contains(t, page.Body.String(), "Log out")
}

func TestLoginFailureRendersBackendMessage(t *testing.T) {
	h := newHarness(t, Options{})
	h.auth.EXPECT().
		Login(mock.Anything, "grace@example.com", "wrong").
		Return(domain.AuthSession{}, errors.New("Invalid credentials")).
		Once()

	rec := h.postForm("/login", url.Values{"email": {"grace@example.com"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Contains(t, rec.Body.String(), `value="grace@example.com"`)
}

func TestLogoutClearsSession(t *testing.T) {
	h := newHarness(t, Options{})
	h.auth.EXPECT().
		Login(mock.Anything, "grace@example.com", "secret").
		Return(domain.AuthSession{Token: "jwt-token", User: &domain.User{Email: "grace@example.com"}}, nil).
		Once()
	h.postForm("/login", url.Values{"email": {"grace@example.com"}, "password": {"secret"}})

	rec := h.postForm("/logout", url.Values{})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	stored, err := h.sessions.Get(context.Background(), h.cookie.Value)
	require.NoError(t, err)
	assert.False(t, stored.Auth.IsAuthenticated())
	assert.Contains(t, h.get("/").Body.String(), "Log in")
}

func TestIntakeRejectsInvalidForm(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.postForm("/analyze", url.Values{
		"vehicleType": {"car"},
		"brand":       {"T"},
		"model":       {"Corolla"},
		"year":        {""},
		"mileage":     {"100"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Brand must be at least 2 characters.")
	assert.Contains(t, body, `class="field-error"`)
}

func TestIntakeRequiresLogin(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.postForm("/analyze", url.Values{
		"vehicleType": {"car"},
		"brand":       {"Toyota"},
		"model":       {"Corolla"},
		"year":        {"2018"},
		"mileage":     {"65000"},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "You must be logged in to add a vehicle.")
	assert.Contains(t, body, "Authentication Error")
}

func TestIntakeRegistersAndRedirectsWithToast(t *testing.T) {
	h := newHarness(t, Options{})
	h.auth.EXPECT().
		Login(mock.Anything, "grace@example.com", "secret").
		Return(domain.AuthSession{Token: "jwt-token", User: &domain.User{Email: "grace@example.com"}}, nil).
		Once()
	h.postForm("/login", url.Values{"email": {"grace@example.com"}, "password": {"secret"}})

	h.registry.EXPECT().
		Register(mock.Anything, "jwt-token", domain.Registration{
			VehicleType: domain.VehicleTypeCar,
			Brand:       "Toyota",
			Model:       "Corolla",
			Year:        2018,
			Mileage:     65000,
		}).
		Return(nil).
		Once()

	rec := h.postForm("/analyze", url.Values{
		"vehicleType": {"car"},
		"brand":       {"Toyota"},
		"model":       {"Corolla"},
		"year":        {"2018"},
		"mileage":     {"65000"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/mission-selection?"), location)

	next := h.get(location)
	assert.Contains(t, next.Body.String(), "Vehicle Added")
	// Flash toasts are shown once.
	assert.NotContains(t, h.get(location).Body.String(), "Vehicle Added")
}

func TestResultsPageListsAgents(t *testing.T) {
	h := newHarness(t, Options{})
	query := domain.EncodeQuery(corolla())
	query.Set(domain.FieldProblem, "")

	rec := h.get("/results?" + query.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "AI Analysis in Progress...")
	assert.Contains(t, body, domain.StepVision)
	assert.Contains(t, body, domain.StepRoadmap)
	assert.Contains(t, body, "/results/stream?")
}

func TestResultsStreamRunsAnalysis(t *testing.T) {
	h := newHarness(t, Options{})
	vehicle := corolla()
	vehicle.Problem = "squeaky brakes"

	h.vision.EXPECT().
		AnalyzeVehicle(mock.Anything, vehicle.VisionInput()).
		Return(domain.AnalysisResult{DetectedIssues: []string{"Worn brake pads", "Low tire pressure"}}, nil).
		Once()
	h.parts.EXPECT().
		DiscoverParts(mock.Anything, mock.MatchedBy(func(q domain.PartsQuery) bool {
			return q.VehicleBrand == "Toyota" && len(q.Parts) == 2
		})).
		Return(domain.PartsResult{Parts: []domain.Part{{Name: "Brake Pad Set", Platform: "AutoZone", Price: 39.5, Rating: 4.6}}}, nil).
		Once()
	h.roadmap.EXPECT().
		GenerateRoadmap(mock.Anything, domain.RoadmapInput{
			VehicleType:    "car",
			DetectedIssues: "Worn brake pads, Low tire pressure, squeaky brakes",
		}).
		Return(domain.RoadmapResult{Roadmap: "## Plan\n\n1. Replace pads\n\n<script>alert(1)</script>"}, nil).
		Once()

	query := domain.EncodeQuery(vehicle)
	rec := h.get("/results/stream?" + query.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)

	var toasts []string
	var steps int
	for _, ev := range events {
		switch ev.Name {
		case eventToast:
			var toast domain.Toast
			require.NoError(t, json.Unmarshal([]byte(ev.Data), &toast))
			toasts = append(toasts, toast.Title)
		case eventStep:
			steps++
		}
	}
	assert.Equal(t, []string{"Vehicle Analysis Complete", "Parts Discovery Complete", "Roadmap Generated"}, toasts)
	assert.Greater(t, steps, 3)

	last := events[len(events)-1]
	require.Equal(t, eventDone, last.Name)
	var done doneEvent
	require.NoError(t, json.Unmarshal([]byte(last.Data), &done))
	assert.Contains(t, done.HTML, "Toyota Corolla Analysis")
	assert.Contains(t, done.HTML, "2018 | 65000 miles")
	assert.Contains(t, done.HTML, "Worn brake pads")
	assert.Contains(t, done.HTML, "AutoZone - $39.50")
	assert.Contains(t, done.HTML, "<h2>Plan</h2>")
	assert.Contains(t, done.HTML, ">70<")
	assert.NotContains(t, done.HTML, "alert(1)")
}

func TestResultsStreamReportsFailedStep(t *testing.T) {
	h := newHarness(t, Options{})
	vehicle := corolla()
	h.vision.EXPECT().
		AnalyzeVehicle(mock.Anything, mock.Anything).
		Return(domain.AnalysisResult{}, errors.New("vision model unavailable")).
		Once()

	query := domain.EncodeQuery(vehicle)
	query.Set(domain.FieldProblem, "")
	rec := h.get("/results/stream?" + query.Encode())

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, eventError, last.Name)

	var failure errorEvent
	require.NoError(t, json.Unmarshal([]byte(last.Data), &failure))
	assert.Contains(t, failure.Message, "vision model unavailable")
}

func TestResultsStreamWithoutVehicleSendsError(t *testing.T) {
	h := newHarness(t, Options{})

	rec := h.get("/results/stream?brand=Toyota")

	events := parseEvents(t, rec.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, eventError, events[0].Name)
	assert.Contains(t, events[0].Data, missingInfoDetail)
}

func TestDiagnosisConversationSurvivesRedirect(t *testing.T) {
	h := newHarness(t, Options{})
	vehicle := corolla()
	h.diagnoser.EXPECT().
		Diagnose(mock.Anything, mock.MatchedBy(func(in domain.DiagnosisInput) bool {
			return in.ProblemDescription == "Grinding noise when braking" && len(in.ChatHistory) == 0
		})).
		Return("Check the brake pads first.", nil).
		Once()

	target := "/critical-diagnosis?" + domain.EncodeQuery(vehicle).Encode()
	rec := h.postForm(target, url.Values{"message": {"Grinding noise when braking"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	page := h.get(rec.Header().Get("Location"))
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Grinding noise when braking")
	assert.Contains(t, body, "Check the brake pads first.")
}

func TestDiagnosisEmptyMessageIsIgnored(t *testing.T) {
	h := newHarness(t, Options{})

	target := "/critical-diagnosis?" + domain.EncodeQuery(corolla()).Encode()
	rec := h.postForm(target, url.Values{"message": {"   "}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func multipartUpload(t *testing.T, vehicleType string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("vehicleType", vehicleType))
	if image != nil {
		part, err := w.CreateFormFile("image", "caliper.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &body, w.FormDataContentType()
}

func TestIdentifyUpload(t *testing.T) {
	h := newHarness(t, Options{})
	h.identifier.EXPECT().
		IdentifyPart(mock.Anything, "car", "caliper.jpg", mock.Anything, mock.Anything).
		Return(domain.PartIdentification{
			VehicleType:  "car",
			System:       "braking_system",
			Part:         "brake_caliper",
			Confidence:   0.9312,
			Purpose:      "Clamps the pads onto the rotor.",
			Alternatives: []domain.PartAlternative{{Part: "brake_drum", Confidence: 0.04}},
		}, nil).
		Once()

	body, contentType := multipartUpload(t, "car", []byte("jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/part-identification", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Identification Complete")
	assert.Contains(t, page, "93.12%")
	assert.Contains(t, page, "brake caliper")
	assert.Contains(t, page, "braking system")
	assert.Contains(t, page, "Confidence: 4.0%")
}

func TestIdentifyWithoutImage(t *testing.T) {
	h := newHarness(t, Options{})

	body, contentType := multipartUpload(t, "car", nil)
	req := httptest.NewRequest(http.MethodPost, "/part-identification", body)
	req.Header.Set("Content-Type", contentType)
	rec := h.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing Image")
}

func ecuSchema() domain.EcuSchema {
	return domain.EcuSchema{
		TunableParams: []string{"fuel_air_ratio", "boost_pressure"},
		Bounds: map[string]domain.Bounds{
			"fuel_air_ratio": {10, 16},
			"boost_pressure": {0, 25},
		},
		StepSizes: map[string]float64{"fuel_air_ratio": 0.1, "boost_pressure": 1},
	}
}

func TestTuningPageRendersSliders(t *testing.T) {
	h := newHarness(t, Options{})
	h.tuner.EXPECT().Schema(mock.Anything).Return(ecuSchema(), nil).Once()

	rec := h.get("/ecu-tuning")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Fuel/Air Ratio")
	assert.Contains(t, body, `name="boost_pressure"`)
	assert.Contains(t, body, `name="fuel_air_ratio" min="10" max="16" step="0.1" value="13.00"`)
	assert.Contains(t, body, `name="boost_pressure" min="0" max="25" step="1" value="12.50"`)
	assert.Contains(t, body, "<output>12.50</output>")

	// The schema is fetched once per visitor.
	h.get("/ecu-tuning")
}

func TestTuningSchemaUnavailable(t *testing.T) {
	h := newHarness(t, Options{})
	h.tuner.EXPECT().Schema(mock.Anything).Return(domain.EcuSchema{}, errors.New("connection refused")).Once()

	rec := h.get("/ecu-tuning")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load ECU schema. The tuning module is unavailable.")
}

func TestTuningSchemaRetriedOnNextVisit(t *testing.T) {
	h := newHarness(t, Options{})
	h.tuner.EXPECT().Schema(mock.Anything).Return(domain.EcuSchema{}, errors.New("connection refused")).Once()

	first := h.get("/ecu-tuning")
	require.Equal(t, http.StatusServiceUnavailable, first.Code)
	cookie := h.cookie
	require.NotNil(t, cookie)

	h.tuner.EXPECT().Schema(mock.Anything).Return(ecuSchema(), nil).Once()

	second := h.get("/ecu-tuning")

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, cookie.Value, h.cookie.Value, "same visitor session")
	assert.Contains(t, second.Body.String(), `name="boost_pressure"`)
	assert.NotContains(t, second.Body.String(), "The tuning module is unavailable.")
}

func TestTuningOptimize(t *testing.T) {
	h := newHarness(t, Options{})
	h.tuner.EXPECT().Schema(mock.Anything).Return(ecuSchema(), nil).Once()
	h.tuner.EXPECT().
		Recommend(mock.Anything, mock.MatchedBy(func(cfg domain.EcuConfig) bool {
			return cfg["fuel_air_ratio"] == 12 && cfg["boost_pressure"] == 12.5 && cfg[domain.StateEngineRPM] == 3000
		}), domain.GoalMaximize).
		Return(domain.Recommendation{
			CurrentScore: 80,
			BestScore:    90,
			NewConfig:    domain.EcuConfig{"fuel_air_ratio": 12.5, "boost_pressure": 10},
			Deltas:       domain.EcuConfig{"fuel_air_ratio": 0.5, "boost_pressure": 0},
			Rationale:    "Richer mixture under load.",
			Direction:    domain.GoalMaximize,
		}, nil).
		Once()

	rec := h.postForm("/ecu-tuning", url.Values{
		"fuel_air_ratio":       {"12"},
		domain.StateEngineRPM:  {"3000"},
		domain.StateEngineLoad: {""},
		"goal":                 {"maximize"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Optimization Results")
	assert.Contains(t, body, "(&#43;12.50%)")
	assert.Contains(t, body, "12.00 → 12.50")
	assert.Contains(t, body, "Richer mixture under load.")
	assert.Contains(t, body, "Optimization Complete!")
	assert.Contains(t, body, `value="3000"`)
}

func TestTuningRejectsUnknownGoal(t *testing.T) {
	h := newHarness(t, Options{})
	h.tuner.EXPECT().Schema(mock.Anything).Return(ecuSchema(), nil).Once()

	rec := h.postForm("/ecu-tuning", url.Values{"goal": {"sideways"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountsProxyForwardsToBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"path":      r.URL.Path,
			"forwarded": r.Header.Get("X-Forwarded-Host"),
		})
	}))
	t.Cleanup(backend.Close)

	h := newHarness(t, Options{AccountsURL: backend.URL})

	req := httptest.NewRequest(http.MethodPost, "http://motorsense.test/api/auth/login", strings.NewReader(`{}`))
	rec := h.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "/api/auth/login", got["path"])
	assert.Equal(t, "motorsense.test", got["forwarded"])
	assert.Nil(t, h.cookie, "proxied calls do not open a web session")
}

func TestAccountsProxyUnreachableBackend(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	unreachable := backend.URL
	backend.Close()

	h := newHarness(t, Options{AccountsURL: unreachable})

	rec := h.do(httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNewServerRejectsRelativeAccountsURL(t *testing.T) {
	sessions, err := sqlite.Open(context.Background(), sqlite.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	_, err = NewServer(Services{}, sessions, Options{AccountsURL: "/api"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestPurgeDropsExpiredSessionsAndIdleState(t *testing.T) {
	h := newHarness(t, Options{SessionTTL: time.Hour})
	ctx := context.Background()

	expired := domain.WebSession{
		ID:        "old",
		CreatedAt: h.clock.now.Add(-3 * time.Hour),
		ExpiresAt: h.clock.now.Add(-time.Hour),
	}
	require.NoError(t, h.sessions.Save(ctx, expired))
	h.server.states.get("old", h.clock.now.Add(-2*time.Hour))
	h.server.states.get("fresh", h.clock.now)

	h.server.purge(ctx)

	_, err := h.sessions.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NotContains(t, h.server.states.states, "old")
	assert.Contains(t, h.server.states.states, "fresh")
}

func TestServeStopsWhenContextIsCancelled(t *testing.T) {
	h := newHarness(t, Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.server.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
