// Package preview serves form definitions over HTTP so they can be viewed
// and submitted in a browser. Posts are decoded and checked server side and
// the form is rendered again with values and messages.
package preview

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/components/suggest"
	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

// CSRFField is the form field and cookie carrying the CSRF token.
const CSRFField = "_csrf"

// DefaultTailwindScript is the Tailwind play build loaded by preview pages.
const DefaultTailwindScript = "https://cdn.tailwindcss.com"

// SuggestPrefix is where suggestion endpoints are mounted.
const SuggestPrefix = "/suggest"

// SuccessNotice is shown above a form after a valid post.
const SuccessNotice = "Submission accepted."

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Options configure the preview server.
type Options struct {
	Address        string
	Forms          []form.Definition
	Store          *config.Store
	Renderer       *html.Renderer
	CSRF           bool
	DisableReqLogs bool
	TailwindScript string
	// Suggestions maps an endpoint name to the choices it searches. Each is
	// served at SuggestPrefix/<name>.
	Suggestions    map[string][]form.Choice
	Logger         zerolog.Logger
}

// Server is the preview HTTP server.
type Server struct {
	opts      Options
	app       *echo.Echo
	pages     *pongo.Engine
	forms     map[string]form.Definition
	order     []string
	assetsDir fs.FS
}

var _ http.Handler = (*Server)(nil)

// NewServer validates the definitions and wires the routes.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		opts.Store = config.NewStore()
	}
	if opts.Renderer == nil {
		renderer, err := html.New(html.WithLogger(opts.Logger))
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		opts.Renderer = renderer
	}
	if opts.TailwindScript == "" {
		opts.TailwindScript = DefaultTailwindScript
	}

	pagesFS, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}
	pages, err := pongo.New(pongo.WithFS(pagesFS))
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}

	s := &Server{
		opts:      opts,
		app:       echo.New(),
		pages:     pages,
		forms:     make(map[string]form.Definition, len(opts.Forms)),
		assetsDir: html.AssetsFS(),
	}
	for idx, def := range opts.Forms {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, fmt.Errorf("preview: form %d has no id", idx)
		}
		if _, exists := s.forms[id]; exists {
			return nil, fmt.Errorf("preview: duplicate form id %q", id)
		}
		if err := form.ValidateDefinition(def); err != nil {
			return nil, fmt.Errorf("preview: form %q: %w", id, err)
		}
		s.forms[id] = def
		s.order = append(s.order, id)
	}
	for name := range opts.Suggestions {
		if strings.Trim(name, "/ ") == "" {
			return nil, fmt.Errorf("preview: suggestion endpoint has no name")
		}
	}
	s.setup()
	return s, nil
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.HTTPErrorHandler = s.handleError

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.Recover())

	assets := http.StripPrefix(html.DefaultAssetPrefix, http.FileServer(http.FS(s.assetsDir)))
	s.app.GET(html.DefaultAssetPrefix+"/*", echo.WrapHandler(assets))

	for name, choices := range s.opts.Suggestions {
		s.app.GET(suggest.MountPath(SuggestPrefix, name), echo.WrapHandler(suggest.Handler(choices)))
	}

	var pages []echo.MiddlewareFunc
	if s.opts.CSRF {
		pages = append(pages, middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup: "form:" + CSRFField,
			CookieName:  CSRFField,
			CookiePath:  "/",
		}))
	}
	s.app.GET("/", s.index, pages...)
	s.app.GET("/forms/:id", s.show, pages...)
	s.app.POST("/forms/:id", s.submit, pages...)
}

// Start listens on the configured address until Stop is called.
func (s *Server) Start() error {
	s.opts.Logger.Info().Str("address", s.opts.Address).Int("forms", len(s.order)).Msg("preview: listening")
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

type indexEntry struct {
	ID          string
	Title       string
	Description string
	Fields      int
}

func (s *Server) index(c echo.Context) error {
	entries := make([]indexEntry, 0, len(s.order))
	for _, id := range s.order {
		def := s.forms[id]
		title := def.Title
		if title == "" {
			title = form.Humanize(id)
		}
		entries = append(entries, indexEntry{
			ID:          id,
			Title:       title,
			Description: def.Description,
			Fields:      len(def.Fields),
		})
	}
	body, err := s.pages.RenderTemplate("index", map[string]any{"forms": entries})
	if err != nil {
		return err
	}
	return s.page(c, http.StatusOK, "Forms", body, false, "")
}

func (s *Server) show(c echo.Context) error {
	def, err := s.lookup(c)
	if err != nil {
		return err
	}
	return s.renderForm(c, http.StatusOK, def, "")
}

func (s *Server) submit(c echo.Context) error {
	def, err := s.lookup(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "unreadable form body", Internal: err}
	}

	sub := form.DecodeSubmission(form.Build(def, s.opts.Store).Resolve(), params)
	s.opts.Logger.Debug().
		Str("form", def.ID).
		Int("values", len(sub.Values)).
		Int("errors", len(sub.Errors)).
		Msg("preview: decoded submission")

	status := http.StatusOK
	if !sub.Valid() {
		status = http.StatusUnprocessableEntity
	}
	if wantsJSON(c.Request()) {
		return c.JSON(status, map[string]any{"values": sub.Values, "errors": sub.Errors})
	}

	opts := []form.Option{form.WithValues(sub.Values)}
	notice := ""
	if sub.Valid() {
		notice = SuccessNotice
	} else {
		opts = append(opts, form.WithErrors(sub.Errors))
	}
	return s.renderForm(c, status, def, notice, opts...)
}

func (s *Server) renderForm(c echo.Context, status int, def form.Definition, notice string, opts ...form.Option) error {
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok && token != "" {
		opts = append(opts, form.WithHidden(form.CSRFToken(CSRFField, token)))
	}
	f := form.Build(def, s.opts.Store, opts...)
	f.Action = c.Request().URL.Path
	f.Method = http.MethodPost
	markup, err := s.opts.Renderer.Render(c.Request().Context(), f)
	if err != nil {
		return err
	}
	title := def.Title
	if title == "" {
		title = form.Humanize(def.ID)
	}
	return s.page(c, status, title, string(markup), true, notice)
}

func (s *Server) page(c echo.Context, status int, title, body string, back bool, notice string) error {
	mode := ""
	if theme := s.opts.Store.Snapshot().Theme; theme != nil && theme.Mode != nil {
		mode = *theme.Mode
	}
	out, err := s.pages.RenderTemplate("layout", map[string]any{
		"title":    title,
		"body":     body,
		"back":     back,
		"notice":   notice,
		"mode":     mode,
		"tailwind": s.opts.TailwindScript,
	})
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, []byte(out))
}

func (s *Server) lookup(c echo.Context) (form.Definition, error) {
	id := c.Param("id")
	def, ok := s.forms[id]
	if !ok {
		return form.Definition{}, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("form %q not found", id))
	}
	return def, nil
}

func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}
	if code >= http.StatusInternalServerError {
		s.opts.Logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("preview: request failed")
	}
	if c.Response().Committed {
		return
	}
	if err := c.String(code, message); err != nil {
		s.opts.Logger.Error().Err(err).Msg("preview: write error response")
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	return slices.ContainsFunc(strings.Split(accept, ","), func(part string) bool {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		return mediaType == echo.MIMEApplicationJSON
	})
}
