package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ProductStore/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20

	defaultPage  = 1
	defaultLimit = 10
)

type Server struct {
	Store Store
	Log   *zap.Logger

	// APIKey guards every /api/products route.
	APIKey string
	// WriteLimitPerMin rate-limits POST/PUT/DELETE per client IP; 0 disables.
	WriteLimitPerMin int

	validate *validator.Validate
}

func (s *Server) Routes() http.Handler {
	if s.validate == nil {
		s.validate = validator.New()
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/products", func(pr chi.Router) {
		pr.Use(kit.APIKeyAuth(s.APIKey))

		pr.Get("/", s.list)
		pr.Get("/search", s.search)
		pr.Get("/stats", s.stats)
		pr.Get("/{id}", s.get)

		pr.Group(func(wr chi.Router) {
			if s.WriteLimitPerMin > 0 {
				limiter := kit.NewIPRateLimiter(s.WriteLimitPerMin, 60)
				wr.Use(limiter.Middleware)
			}
			wr.Post("/", s.create)
			wr.Put("/{id}", s.update)
			wr.Delete("/{id}", s.delete)
		})
	})

	return r
}

type listResp struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Products []Product `json:"products"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := queryInt(q, "page", defaultPage)
	limit := queryInt(q, "limit", defaultLimit)

	products, err := s.Store.List(r.Context(), q.Get("category"))
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}

	total := len(products)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	kit.WriteJSON(w, http.StatusOK, listResp{
		Total:    total,
		Page:     page,
		Limit:    limit,
		Products: products[start:end],
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.SearchName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.serverError(w, r, "search products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Store.CountByCategory(r.Context())
	if err != nil {
		s.serverError(w, r, "product stats failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, counts)
}

type createReq struct {
	Name        *string  `json:"name"        validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required"`
	Category    *string  `json:"category"    validate:"required"`
	InStock     *bool    `json:"inStock"     validate:"required"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid request body", map[string]any{"cause": err.Error()})
		return
	}

	if err := s.validate.Struct(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "missing or invalid fields", validationDetails(err))
		return
	}

	p := Product{
		ID:          "p_" + uuid.NewString(),
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		InStock:     *req.InStock,
	}

	if err := s.Store.Create(r.Context(), p); err != nil {
		s.serverError(w, r, "create product failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

// updateReq holds each field raw so that an ill-typed field can be
// skipped on its own instead of failing the whole request.
type updateReq struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    json.RawMessage `json:"category"`
	InStock     json.RawMessage `json:"inStock"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid request body", map[string]any{"cause": err.Error()})
		return
	}

	patch := Patch{
		Name:        rawString(req.Name),
		Description: rawString(req.Description),
		Price:       rawFloat(req.Price),
		Category:    rawString(req.Category),
		InStock:     rawBool(req.InStock),
	}

	p, ok, err := s.Store.Update(r.Context(), id, patch)
	if err != nil {
		s.serverError(w, r, "update product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

// queryInt returns def for absent, non-numeric, or sub-1 values.
func queryInt(q url.Values, key string, def int) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "failed on rule: " + fe.Tag()
	}
	return fields
}

// jsonNull is skipped like an absent field: unmarshalling null into a
// non-pointer target is a no-op that reports success, so it has to be
// filtered out before the type check.
var jsonNull = []byte("null")

func rawString(raw json.RawMessage) *string {
	if raw == nil || bytes.Equal(raw, jsonNull) {
		return nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func rawFloat(raw json.RawMessage) *float64 {
	if raw == nil || bytes.Equal(raw, jsonNull) {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func rawBool(raw json.RawMessage) *bool {
	if raw == nil || bytes.Equal(raw, jsonNull) {
		return nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
