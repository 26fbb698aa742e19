package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type authForm struct {
	FullName string
	Email    string
	Error    string
}

type intakeForm struct {
	VehicleType string
	Brand       string
	Model       string
	Year        string
	Mileage     string
	Errors      domain.ValidationErrors
	Error       string
}

type missionView struct {
	Vehicle    domain.VehicleDescriptor
	RepairLink string
	TuneLink   string
}

type categoryView struct {
	Vehicle        domain.VehicleDescriptor
	SustenanceLink string
	CriticalLink   string
	AnalysisLink   string
}

type resultsView struct {
	Vehicle   domain.VehicleDescriptor
	StreamURL string
	Steps     []stepCard
}

type stepCard struct {
	Name        string
	Description string
}

type diagnosisView struct {
	Chat         application.ChatView
	Action       string
	AnalysisLink string
	Error        string
}

type identifyView struct {
	VehicleType string
	Action      string
	Result      *domain.PartIdentification
	Error       string
}

type tuningView struct {
	application.TuningView
	Action       string
	VehicleState map[string]string
	StateKeys    []string
	Sliders      []paramSlider
}

type paramSlider struct {
	Key   string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", page{Title: "Home"})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", page{Title: "Log in", Back: application.PathHome, Data: authForm{}})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := authForm{Email: r.PostFormValue("email")}

	rs := sessionFrom(r.Context())
	_, err := s.sessionService(rs).Login(r.Context(), application.LoginCommand{
		Email:    form.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		s.logger.Debug("web login failed", zap.Error(err))
		form.Error = userMessage(err)
		s.render(w, r, http.StatusUnauthorized, "login", page{Title: "Log in", Back: application.PathHome, Data: form})
		return
	}

	s.redirect(w, r, application.PathAnalyze)
}

func (s *Server) handleSignUpForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "signup", page{Title: "Sign up", Back: application.PathHome, Data: authForm{}})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := authForm{FullName: r.PostFormValue("full_name"), Email: r.PostFormValue("email")}

	rs := sessionFrom(r.Context())
	session, err := s.sessionService(rs).SignUp(r.Context(), application.SignUpCommand{
		FullName: form.FullName,
		Email:    form.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		form.Error = userMessage(err)
		s.render(w, r, http.StatusBadRequest, "signup", page{Title: "Sign up", Back: application.PathHome, Data: form})
		return
	}
	if !session.IsAuthenticated() {
		s.redirect(w, r, application.PathLogin)
		return
	}

	s.redirect(w, r, application.PathAnalyze)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	if err := s.sessionService(rs).Logout(r.Context()); err != nil {
		s.logger.Warn("web logout", zap.Error(err))
	}
	s.states.forget(rs.store.id())

	s.redirect(w, r, application.PathHome)
}

func (s *Server) handleIntakeForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "analyze", page{
		Title: "Add Vehicle",
		Back:  application.PathHome,
		Data:  intakeForm{VehicleType: string(domain.VehicleTypeCar)},
	})
}

func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := intakeForm{
		VehicleType: r.PostFormValue(domain.FieldVehicleType),
		Brand:       r.PostFormValue(domain.FieldBrand),
		Model:       r.PostFormValue(domain.FieldModel),
		Year:        r.PostFormValue(domain.FieldYear),
		Mileage:     r.PostFormValue(domain.FieldMileage),
	}
	renderForm := func(status int) {
		s.render(w, r, status, "analyze", page{Title: "Add Vehicle", Back: application.PathHome, Data: form})
	}

	registration, fieldErrs := domain.ParseRegistration(form.VehicleType, form.Brand, form.Model, form.Year, form.Mileage)
	if len(fieldErrs) > 0 {
		var rest domain.ValidationErrors
		if errors.As(registration.Validate(s.clock.Now()), &rest) {
			for field, msg := range rest {
				if _, ok := fieldErrs[field]; !ok {
					fieldErrs[field] = msg
				}
			}
		}
		form.Errors = fieldErrs
		renderForm(http.StatusUnprocessableEntity)
		return
	}

	rs := sessionFrom(r.Context())
	auth, err := s.sessionService(rs).Load(r.Context())
	if err != nil {
		s.logger.Warn("load auth session", zap.Error(err))
	}

	location, err := s.services.Intake.Submit(r.Context(), application.RegisterVehicleCommand{
		Session:      auth,
		Registration: registration,
	})
	if err != nil {
		var validation domain.ValidationErrors
		switch {
		case errors.As(err, &validation):
			form.Errors = validation
			renderForm(http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrNotAuthenticated):
			form.Error = "You must be logged in to add a vehicle."
			renderForm(http.StatusUnauthorized)
		default:
			form.Error = userMessage(err)
			renderForm(http.StatusBadGateway)
		}
		return
	}

	s.redirect(w, r, location)
}

func (s *Server) handleMissionSelection(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	vehicle, err := domain.DecodeVehicleQuery(values)
	if err != nil {
		s.renderMissing(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "mission", page{
		Title: "Mission Selection",
		Back:  application.BackLink(application.PathMissionSelection, values),
		Data: missionView{
			Vehicle:    vehicle,
			RepairLink: application.MissionLink(values, domain.MissionRepair),
			TuneLink:   application.MissionLink(values, domain.MissionTune),
		},
	})
}

func (s *Server) handleOperationalCategory(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	vehicle, err := domain.DecodeVehicleQuery(values)
	if err != nil {
		s.renderMissing(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "category", page{
		Title: "Operational Category",
		Back:  application.BackLink(application.PathOperationalCategory, values),
		Data: categoryView{
			Vehicle:        vehicle,
			SustenanceLink: application.CategoryLink(values, application.CategorySustenance),
			CriticalLink:   application.CategoryLink(values, application.CategoryCritical),
			AnalysisLink:   application.FullAnalysisLink(values),
		},
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	vehicle, err := domain.DecodeResultsQuery(values)
	if err != nil {
		s.renderMissing(w, r, err)
		return
	}

	steps := make([]stepCard, 0, len(domain.StepOrder))
	for _, name := range domain.StepOrder {
		steps = append(steps, stepCard{Name: name, Description: domain.StepDescription(name)})
	}

	s.render(w, r, http.StatusOK, "results", page{
		Title: "Analysis",
		Back:  application.BackLink(application.PathResults, values),
		Data: resultsView{
			Vehicle:   vehicle,
			StreamURL: application.PathResults + "/stream?" + values.Encode(),
			Steps:     steps,
		},
	})
}

// chatKey identifies one conversation: the same vehicle and problem reopen it.
func chatKey(vehicle domain.VehicleDescriptor) string {
	return domain.EncodeQuery(vehicle).Encode()
}

func (s *Server) chatFor(r *http.Request, vehicle domain.VehicleDescriptor) *application.ChatSession {
	rs := sessionFrom(r.Context())
	return rs.state.chat(chatKey(vehicle), func() *application.ChatSession {
		return s.services.Chat.NewSession(vehicle)
	})
}

func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	vehicle, err := domain.DecodeVehicleQuery(values)
	if err != nil {
		s.renderMissing(w, r, err)
		return
	}

	s.renderDiagnosis(w, r, http.StatusOK, values, s.chatFor(r, vehicle), "")
}

func (s *Server) handleDiagnosisMessage(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	vehicle, err := domain.DecodeVehicleQuery(values)
	if err != nil {
		s.renderMissing(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	chat := s.chatFor(r, vehicle)
	_, err = chat.Submit(r.Context(), r.PostFormValue("message"))
	switch {
	case err == nil, errors.Is(err, domain.ErrEmptyMessage):
		s.redirect(w, r, application.PathCriticalDiagnosis+"?"+values.Encode())
	case errors.Is(err, domain.ErrReplyInFlight):
		s.renderDiagnosis(w, r, http.StatusConflict, values, chat, "Please wait for the current reply.")
	default:
		s.logger.Warn("diagnosis submit", zap.Error(err))
		s.renderDiagnosis(w, r, http.StatusInternalServerError, values, chat, userMessage(err))
	}
}

func (s *Server) renderDiagnosis(w http.ResponseWriter, r *http.Request, status int, values url.Values, chat *application.ChatSession, message string) {
	s.render(w, r, status, "diagnosis", page{
		Title: "Critical Diagnosis",
		Back:  application.BackLink(application.PathCriticalDiagnosis, values),
		Data: diagnosisView{
			Chat:         chat.View(),
			Action:       application.PathCriticalDiagnosis + "?" + values.Encode(),
			AnalysisLink: application.FullAnalysisLink(values),
			Error:        message,
		},
	})
}

func (s *Server) handleIdentifyForm(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	s.renderIdentify(w, r, http.StatusOK, values, identifyView{VehicleType: values.Get(domain.FieldVehicleType)})
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.renderIdentify(w, r, http.StatusBadRequest, values, identifyView{Error: "The uploaded image is too large or unreadable."})
		return
	}

	view := identifyView{VehicleType: r.FormValue(domain.FieldVehicleType)}
	cmd := application.IdentifyCommand{VehicleType: view.VehicleType}

	if file, header, err := r.FormFile("image"); err == nil {
		data, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			s.renderIdentify(w, r, http.StatusBadRequest, values, identifyView{VehicleType: view.VehicleType, Error: "The uploaded image could not be read."})
			return
		}
		cmd.Image = data
		cmd.Filename = header.Filename
		cmd.ContentType = header.Header.Get("Content-Type")
	}

	result, err := s.services.Identify.Identify(r.Context(), cmd)
	if err != nil {
		view.Error = userMessage(err)
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrMissingImage) || errors.Is(err, domain.ErrMissingVehicleType) {
			status = http.StatusBadRequest
		}
		s.renderIdentify(w, r, status, values, view)
		return
	}

	view.Result = &result
	s.renderIdentify(w, r, http.StatusOK, values, view)
}

func (s *Server) renderIdentify(w http.ResponseWriter, r *http.Request, status int, values url.Values, view identifyView) {
	view.Action = application.PathPartIdentification
	if len(values) > 0 {
		view.Action += "?" + values.Encode()
	}

	s.render(w, r, status, "identify", page{
		Title: "Part Identification",
		Back:  application.BackLink(application.PathPartIdentification, values),
		Data:  view,
	})
}

func (s *Server) tuningFor(r *http.Request) *application.TuningSession {
	rs := sessionFrom(r.Context())
	return rs.state.tuningSession(s.services.Tuning.NewSession)
}

func (s *Server) handleTuning(w http.ResponseWriter, r *http.Request) {
	session := s.tuningFor(r)
	status := http.StatusOK
	if err := session.LoadSchema(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
	}

	s.renderTuning(w, r, status, r.URL.Query(), session, nil)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	session := s.tuningFor(r)
	if err := session.LoadSchema(r.Context()); err != nil {
		s.renderTuning(w, r, http.StatusServiceUnavailable, values, session, nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := session.View()
	for _, param := range view.Schema.TunableParams {
		raw := strings.TrimSpace(r.PostFormValue(param))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if _, err := session.SetParam(param, value); err != nil {
			s.logger.Warn("set ecu param", zap.String("param", param), zap.Error(err))
		}
	}

	state := make(map[string]string, len(domain.VehicleStateKeys))
	for _, key := range domain.VehicleStateKeys {
		state[key] = r.PostFormValue(key)
	}

	status := http.StatusOK
	if _, err := session.Optimize(r.Context(), application.OptimizeCommand{
		VehicleState: state,
		Goal:         domain.Goal(r.PostFormValue("goal")),
	}); err != nil {
		status = http.StatusBadGateway
		if errors.Is(err, application.ErrInvalidGoal) {
			status = http.StatusBadRequest
		}
	}

	s.renderTuning(w, r, status, values, session, state)
}

func (s *Server) renderTuning(w http.ResponseWriter, r *http.Request, status int, values url.Values, session *application.TuningSession, state map[string]string) {
	current := session.View()
	view := tuningView{
		TuningView:   current,
		Action:       application.PathECUTuning,
		VehicleState: state,
		StateKeys:    domain.VehicleStateKeys,
	}
	if len(values) > 0 {
		view.Action += "?" + values.Encode()
	}
	if current.Schema != nil {
		for _, param := range current.Schema.TunableParams {
			bounds := current.Schema.Bounds[param]
			view.Sliders = append(view.Sliders, paramSlider{
				Key:   param,
				Min:   bounds.Min(),
				Max:   bounds.Max(),
				Step:  current.Schema.StepSizes[param],
				Value: current.Params[param],
			})
		}
	}

	s.render(w, r, status, "tuning", page{
		Title: "ECU Tuning",
		Back:  application.BackLink(application.PathECUTuning, values),
		Data:  view,
	})
}
