package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/auth"
)

// ViewCookie holds the signed view selector.
const ViewCookie = "farol_view"

const recentProfiles = 5

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the dashboard handlers.
type Options struct {
	// BackendPublicURL is the browser-reachable backend origin used by the interview iframe and voice signup.
	BackendPublicURL string
	CookieTTL        time.Duration
	SecureCookie     bool
}

// Handler serves the dashboard views.
type Handler struct {
	tokens    *auth.ViewTokens
	profiles  repositories.ProfileRepository
	templates *template.Template
	opts      Options
	logger    *zap.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(tokens *auth.ViewTokens, profiles repositories.ProfileRepository, opts Options, logger *zap.Logger) (*Handler, error) {
	t, err := template.New("dashboard").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard templates: %w", err)
	}

	opts.BackendPublicURL = strings.TrimRight(opts.BackendPublicURL, "/")
	return &Handler{
		tokens:    tokens,
		profiles:  profiles,
		templates: t,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Register mounts the dashboard routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/", h.index)
	e.POST("/navigate", h.navigate)
	e.POST("/cadastro", h.signup)
}

// signupForm echoes submitted values back into the form.
type signupForm struct {
	Name               string
	DesiredRole        string
	WorkModel          string
	AccessibilityNeeds []string
	ExperienceSummary  string
}

func (f signupForm) Has(option string) bool {
	for _, n := range f.AccessibilityNeeds {
		if n == option {
			return true
		}
	}
	return false
}

type pageData struct {
	Views      []View
	Current    View
	Content    template.HTML
	BackendURL string

	Flash string
	Error string
	Form  signupForm

	WelcomeCards       []Card
	KPIs               []KPI
	RecentProfiles     []*entities.CandidateProfile
	Jobs               []Card
	JobFilters         []Filter
	CoreCourses        []Card
	RecommendedCourses []Card
	Matches            []Match
	Feedback           []FeedbackCard
	WorkModels         []string
	AccessibilityOpts  []string
}

func (h *Handler) index(c echo.Context) error {
	return h.render(c, http.StatusOK, h.currentView(c), nil)
}

func (h *Handler) navigate(c echo.Context) error {
	id := c.FormValue("view")
	view, ok := lookupView(id)
	if !ok {
		h.logger.Warn("Unknown dashboard view requested", zap.String("view", id))
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":   "invalid_view",
			"message": fmt.Sprintf("Tela desconhecida: %q", id),
		})
	}

	token, err := h.tokens.Generate(view.ID)
	if err != nil {
		h.logger.Error("Failed to sign view cookie", zap.Error(err))
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     ViewCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL().Seconds()),
	})

	h.logger.Debug("Dashboard view selected", zap.String("view", view.ID))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) signup(c echo.Context) error {
	form := signupForm{
		Name:              strings.TrimSpace(c.FormValue("nome")),
		DesiredRole:       strings.TrimSpace(c.FormValue("cargo")),
		WorkModel:         c.FormValue("modelo"),
		ExperienceSummary: strings.TrimSpace(c.FormValue("experiencia")),
	}
	if params, err := c.FormParams(); err == nil {
		form.AccessibilityNeeds = params["acessibilidade"]
	}

	view, _ := lookupView(ViewSignup)
	profile := &entities.CandidateProfile{
		Name:               form.Name,
		DesiredRole:        form.DesiredRole,
		WorkModel:          form.WorkModel,
		AccessibilityNeeds: form.AccessibilityNeeds,
		ExperienceSummary:  form.ExperienceSummary,
	}

	if err := h.profiles.Create(c.Request().Context(), profile); err != nil {
		if errors.Is(err, entities.ErrProfileNameRequired) {
			return h.render(c, http.StatusUnprocessableEntity, view, func(d *pageData) {
				d.Error = "Informe seu nome para continuar."
				d.Form = form
			})
		}
		h.logger.Error("Failed to save candidate profile", zap.Error(err))
		return h.render(c, http.StatusInternalServerError, view, func(d *pageData) {
			d.Error = "Não foi possível salvar o cadastro. Tente novamente."
			d.Form = form
		})
	}

	h.logger.Info("Candidate profile saved",
		zap.String("profile_id", profile.ID),
		zap.String("work_model", profile.WorkModel),
		zap.Int("accessibility_needs", len(profile.AccessibilityNeeds)))

	return h.render(c, http.StatusOK, view, func(d *pageData) {
		d.Flash = "Cadastro salvo!"
	})
}

// currentView falls back to the welcome view on a missing, expired or
// tampered cookie.
func (h *Handler) currentView(c echo.Context) View {
	welcome, _ := lookupView(ViewWelcome)

	cookie, err := c.Cookie(ViewCookie)
	if err != nil || cookie.Value == "" {
		return welcome
	}
	claims, err := h.tokens.Validate(cookie.Value)
	if err != nil {
		h.logger.Debug("Ignoring invalid view cookie", zap.Error(err))
		return welcome
	}
	view, ok := lookupView(claims.View)
	if !ok {
		return welcome
	}
	return view
}

func (h *Handler) render(c echo.Context, status int, view View, mutate func(*pageData)) error {
	data := &pageData{
		Views:              Views(),
		Current:            view,
		BackendURL:         h.opts.BackendPublicURL,
		WelcomeCards:       welcomeCards,
		KPIs:               homeKPIs,
		Jobs:               jobCards(),
		JobFilters:         jobFilters,
		CoreCourses:        coreCourses,
		RecommendedCourses: recommendedCourses,
		Matches:            matches,
		Feedback:           feedbackCards,
		WorkModels:         workModels,
		AccessibilityOpts:  accessibilityOptions,
	}
	if view.ID == ViewHome {
		recent, err := h.profiles.List(c.Request().Context(), recentProfiles)
		if err != nil {
			h.logger.Warn("Failed to list recent profiles", zap.Error(err))
		}
		data.RecentProfiles = recent
	}
	if mutate != nil {
		mutate(data)
	}

	var content bytes.Buffer
	if err := h.templates.ExecuteTemplate(&content, "view-"+view.ID, data); err != nil {
		h.logger.Error("Failed to render view", zap.String("view", view.ID), zap.Error(err))
		return err
	}
	data.Content = template.HTML(content.String())

	var page bytes.Buffer
	if err := h.templates.ExecuteTemplate(&page, "layout", data); err != nil {
		h.logger.Error("Failed to render layout", zap.Error(err))
		return err
	}
	return c.HTMLBlob(status, page.Bytes())
}

func (h *Handler) cookieTTL() time.Duration {
	if h.opts.CookieTTL > 0 {
		return h.opts.CookieTTL
	}
	return 12 * time.Hour
}
