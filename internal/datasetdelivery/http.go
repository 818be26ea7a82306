// Package datasetdelivery manages delivery layer of datasets.
package datasetdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/datasetservice"
	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
	"github.com/go-petr/pet-bank-datagen/pkg/web"
)

// Service provides service layer interface needed by dataset delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package datasetdelivery
type Service interface {
	Generate(ctx context.Context, p datasetservice.Params) (domain.Dataset, domain.SynthesisStats, error)
}

// MetricsRecorder records the outcome of a generation.
type MetricsRecorder interface {
	Record(ds domain.Dataset, stats domain.SynthesisStats)
}

// Handler facilitates dataset delivery layer logic.
type Handler struct {
	service  Service
	metrics  MetricsRecorder
	defaults datasetservice.Params
}

// NewHandler returns dataset handler filling request gaps from defaults.
func NewHandler(ds Service, mr MetricsRecorder, defaults datasetservice.Params) Handler {
	return Handler{
		service:  ds,
		metrics:  mr,
		defaults: defaults,
	}
}

type data struct {
	Dataset domain.Dataset        `json:"dataset"`
	Stats   domain.SynthesisStats `json:"stats"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type generateRequest struct {
	Seed            *int64 `json:"seed"`
	Clients         int    `json:"clients" binding:"omitempty,min=1,max=200"`
	MinTransactions int    `json:"minTransactions" binding:"omitempty,min=1,max=100"`
	MaxTransactions int    `json:"maxTransactions" binding:"omitempty,min=1,max=100"`
	WindowStart     string `json:"windowStart" binding:"omitempty,datetime=2006-01-02"`
	WindowEnd       string `json:"windowEnd" binding:"omitempty,datetime=2006-01-02"`
	Locale          string `json:"locale" binding:"omitempty,locale"`
}

// params overrides the defaults with the fields set in the request.
func (r generateRequest) params(defaults datasetservice.Params) (datasetservice.Params, error) {
	p := defaults

	if r.Seed != nil {
		p.Seed = *r.Seed
	}

	if r.Clients != 0 {
		p.TargetClients = r.Clients
	}

	if r.MinTransactions != 0 {
		p.Synthesis.MinTransactions = r.MinTransactions
	}

	if r.MaxTransactions != 0 {
		p.Synthesis.MaxTransactions = r.MaxTransactions
	}

	if r.Locale != "" {
		p.Locale = r.Locale
	}

	if r.WindowStart != "" {
		d, err := domain.ParseDate(r.WindowStart)
		if err != nil {
			return p, err
		}

		p.Synthesis.WindowStart = d
	}

	if r.WindowEnd != "" {
		d, err := domain.ParseDate(r.WindowEnd)
		if err != nil {
			return p, err
		}

		p.Synthesis.WindowEnd = d
	}

	return p, nil
}

// Generate handles http request to generate a dataset.
//
// Every request draws from its own generator, so equal requests get equal datasets.
func (h *Handler) Generate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req generateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		} else {
			errMsg = "invalid request body"
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	p, err := req.params(h.defaults)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	ds, stats, err := h.service.Generate(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSynthesisConfig), errors.Is(err, domain.ErrUnsupportedLocale):
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if h.metrics != nil {
		h.metrics.Record(ds, stats)
	}

	res := response{
		Data: data{Dataset: ds, Stats: stats},
	}

	gctx.JSON(http.StatusOK, res)
}
