// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
	"github.com/ashlight2510/pick/internal/metrics"
	"github.com/ashlight2510/pick/internal/recommend"
)

// HandlerConfig holds the request handling limits.
type HandlerConfig struct {
	// PageSize and MaxPageSize bound catalog listing pagination.
	PageSize    int
	MaxPageSize int
}

// DefaultHandlerConfig returns the default handler limits.
func DefaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{PageSize: 20, MaxPageSize: 100}
}

// Handlers serves the HTTP API over the dataset store and the picker.
type Handlers struct {
	store    *catalog.Store
	picker   *recommend.Picker
	cfg      *HandlerConfig
	validate *validator.Validate
	started  time.Time
}

// NewHandlers builds the API handlers.
func NewHandlers(store *catalog.Store, picker *recommend.Picker, cfg *HandlerConfig) *Handlers {
	if cfg == nil {
		cfg = DefaultHandlerConfig()
	}
	return &Handlers{
		store:    store,
		picker:   picker,
		cfg:      cfg,
		validate: validator.New(),
		started:  time.Now(),
	}
}

// RecommendationRequest is the POST /recommendations body. Re-POSTing the
// same answers rerolls the shortlist.
type RecommendationRequest struct {
	Answers    recommend.AnswerSet `json:"answers"`
	SampleSize int                 `json:"sample_size" validate:"omitempty,min=1"`
}

// HandleRecommendations runs one filter/sample round over the catalog.
func (h *Handlers) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		rw.ValidationError("Invalid recommendation request", validationDetails(err))
		return
	}

	result := h.picker.Recommend(h.store.Titles(), &req.Answers, req.SampleSize)
	metrics.RecordRecommendRound(result.PoolSize, result.FellBack,
		len(result.Items) == 0 && req.Answers.Strict())

	rw.Success(result)
}

// titleListResponse is the paginated catalog listing payload.
type titleListResponse struct {
	Items       []catalog.TitleRecord `json:"items"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// HandleTitles lists the catalog in score order with offset pagination. An
// optional type parameter restricts the media type.
func (h *Handlers) HandleTitles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		rw.BadRequest("offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", h.cfg.PageSize)
	if err != nil || limit <= 0 {
		rw.BadRequest("limit must be a positive integer")
		return
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}

	titles := h.store.Titles()
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		mediaType := catalog.MediaType(typeParam)
		if !mediaType.Valid() {
			rw.BadRequest("type must be movie or tv")
			return
		}
		filtered := titles[:0:0]
		for _, t := range titles {
			if t.Type == mediaType {
				filtered = append(filtered, t)
			}
		}
		titles = filtered
	}

	total := len(titles)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := titles[offset:end]

	rw.SuccessWithPagination(titleListResponse{
		Items:       page,
		GeneratedAt: h.store.GeneratedAt(),
	}, &PaginationMeta{
		Total:   total,
		Count:   len(page),
		Offset:  offset,
		Limit:   limit,
		HasMore: end < total,
	})
}

// HandleTitle returns one title by media type and id.
func (h *Handlers) HandleTitle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	mediaType, id, ok := titleKey(rw, r)
	if !ok {
		return
	}
	title, err := h.store.Get(mediaType, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.NotFound("Title not found")
			return
		}
		rw.InternalError("Title lookup failed")
		return
	}
	rw.Success(title)
}

// similarResponse is the similar-titles payload.
type similarResponse struct {
	Seed  catalog.Key           `json:"seed"`
	Items []catalog.TitleRecord `json:"items"`
}

// HandleSimilar returns titles related to the given one.
func (h *Handlers) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	mediaType, id, ok := titleKey(rw, r)
	if !ok {
		return
	}
	n, err := queryInt(r, "n", 0)
	if err != nil || n < 0 {
		rw.BadRequest("n must be a non-negative integer")
		return
	}

	seed, err := h.store.Get(mediaType, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			rw.NotFound("Title not found")
			return
		}
		rw.InternalError("Title lookup failed")
		return
	}

	items := h.picker.Similar(h.store.Titles(), &seed, n)
	rw.Success(similarResponse{Seed: seed.Key(), Items: items})
}

// quickPickResponse is the quick-pick collection payload.
type quickPickResponse struct {
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Items       []catalog.TitleRecord `json:"items"`
}

// quickPickIndexResponse lists the curated collection slugs.
type quickPickIndexResponse struct {
	Slugs []string `json:"slugs"`
}

// HandleQuickPickIndex lists the known collection slugs in display order.
func (h *Handlers) HandleQuickPickIndex(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(quickPickIndexResponse{
		Slugs: recommend.QuickPickSlugs(),
	})
}

// HandleQuickPick returns one curated collection by slug.
func (h *Handlers) HandleQuickPick(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	slug := chi.URLParam(r, "slug")
	pick, items, ok := h.picker.QuickPick(h.store.Titles(), slug)
	if !ok {
		rw.NotFound("Unknown collection: " + slug)
		return
	}

	logging.Ctx(r.Context()).Debug().Str("slug", slug).Int("titles", len(items)).Msg("quick pick served")
	rw.Success(quickPickResponse{
		Slug:        pick.Slug,
		Title:       pick.Title,
		Description: pick.Description,
		Items:       items,
	})
}

// reloadResponse is the dataset reload payload.
type reloadResponse struct {
	Status      catalog.LoadStatus `json:"status"`
	Titles      int                `json:"titles"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// HandleDatasetReload re-reads the dataset source. An unavailable source
// keeps the previous catalog serving and reports 503.
func (h *Handlers) HandleDatasetReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	result := h.store.Load(r.Context())
	metrics.RecordDatasetLoad(string(result.Status), result.Count, h.store.GeneratedAt())

	resp := reloadResponse{
		Status:      result.Status,
		Titles:      result.Count,
		GeneratedAt: h.store.GeneratedAt(),
	}
	if result.Status == catalog.StatusUnavailable {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Dataset source unavailable, serving previous catalog", resp)
		return
	}
	rw.Success(resp)
}

// healthResponse is the health payload.
type healthResponse struct {
	Status        string             `json:"status"`
	DatasetStatus catalog.LoadStatus `json:"dataset_status"`
	Titles        int                `json:"titles"`
	GeneratedAt   time.Time          `json:"generated_at,omitempty"`
	LoadedAt      time.Time          `json:"loaded_at,omitempty"`
	UptimeSeconds int64              `json:"uptime_seconds"`
}

// HandleHealth reports process and dataset health. The endpoint returns 200
// even with an empty catalog: the service degrades, it does not die, when
// the dataset is missing.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	last := h.store.LastResult()
	status := "ok"
	if last.Status != catalog.StatusLoaded {
		status = "degraded"
	}
	rw.Success(healthResponse{
		Status:        status,
		DatasetStatus: last.Status,
		Titles:        len(h.store.Titles()),
		GeneratedAt:   h.store.GeneratedAt(),
		LoadedAt:      h.store.LoadedAt(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// titleKey parses the {mediaType}/{id} route params, writing a 400 on
// malformed input.
func titleKey(rw *ResponseWriter, r *http.Request) (catalog.MediaType, int, bool) {
	mediaType := catalog.MediaType(chi.URLParam(r, "mediaType"))
	if !mediaType.Valid() {
		rw.BadRequest("media type must be movie or tv")
		return "", 0, false
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		rw.BadRequest("id must be a positive integer")
		return "", 0, false
	}
	return mediaType, id, true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// validationDetails flattens validator errors into a field -> constraint map.
func validationDetails(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
