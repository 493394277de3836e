package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
	"github.com/mrops-br/storefront/internal/infrastructure/http/view"
)

// Pages renders HTML pages with the pending notices of the browser session
type Pages struct {
	views    *view.Renderer
	sessions *session.Manager
	logger   *slog.Logger
}

// NewPages creates the shared page renderer for the HTML handlers
func NewPages(views *view.Renderer, sessions *session.Manager, logger *slog.Logger) *Pages {
	return &Pages{
		views:    views,
		sessions: sessions,
		logger:   logger,
	}
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	page := view.Page{
		Title:   title,
		Notices: p.sessions.Notices(w, r),
		Data:    data,
	}

	if err := p.views.Render(w, status, name, page); err != nil {
		p.logger.ErrorContext(r.Context(), "Failed to render page",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p *Pages) notFound(w http.ResponseWriter, r *http.Request, heading string) {
	p.render(w, r, http.StatusNotFound, view.NotFound, heading, view.MessageData{Heading: heading})
}

func (p *Pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.ErrorContext(r.Context(), "Request failed",
		slog.String("error", err.Error()),
	)
	p.render(w, r, http.StatusInternalServerError, view.ServerError, "ERROR", view.MessageData{
		Heading: "SOMETHING WENT WRONG",
		Message: "The catalog could not be read. Try again later.",
	})
}

func (p *Pages) notify(w http.ResponseWriter, r *http.Request, title, description, variant string) {
	p.sessions.Notify(w, r, session.Notice{
		Title:       title,
		Description: description,
		Variant:     variant,
	})
}

func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// productID returns the decoded {id} route parameter. chi matches on the raw
// path when the request carries escaped characters, leaving the parameter
// escaped; otherwise it is already decoded.
func productID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}
