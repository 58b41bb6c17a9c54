package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/kahvecikaan/productquery/internal/events"
	"github.com/kahvecikaan/productquery/internal/query"
)

type ProductService interface {
	// FetchProducts runs a query against the catalog: the filter is
	// normalized, the requested page (or all pages) fetched and the result
	// sorted locally.
	FetchProducts(ctx context.Context, params domain.QueryParams) (domain.Products, error)
}

type productService struct {
	source   query.PageFetcher
	eventBus *events.EventBus[any]
	logger   hclog.Logger
	opts     []query.FetcherOption
}

func NewProductService(
	source query.PageFetcher,
	eventBus *events.EventBus[any],
	logger hclog.Logger,
	opts ...query.FetcherOption) ProductService {
	return &productService{
		source:   source,
		eventBus: eventBus,
		logger:   logger,
		opts:     opts,
	}
}

func (s *productService) FetchProducts(ctx context.Context, params domain.QueryParams) (domain.Products, error) {
	queryID := uuid.New().String()
	log := s.logger.With("query_id", queryID)

	filter, dropped := query.NormalizeFilter(params.Filter)
	if len(dropped) > 0 {
		log.Debug("Dropped unknown filter terms", "dropped", dropped)
	}
	if params.Filter != "" && filter.IsEmpty() {
		log.Warn("Filter not recognized, fetching without filter", "raw_filter", params.Filter)
		s.eventBus.Publish(events.FilterIgnored{QueryID: queryID, Raw: params.Filter, Dropped: dropped})
	}

	sortSpec := query.ResolveSort(params.Sort)

	log.Debug("Fetching products",
		"page", params.Page,
		"filter", filter.String(),
		"sort", sortSpec.String())

	opts := append([]query.FetcherOption{query.WithAttemptHook(s.attemptPublisher(queryID))}, s.opts...)
	fetcher := query.NewFetcher(s.source, log.Named("fetcher"), opts...)

	products, err := fetcher.Fetch(ctx, params.Page, filter)
	if err != nil {
		log.Error("Unable to fetch products", "page", params.Page, "error", err)
		s.eventBus.Publish(events.QueryFailed{QueryID: queryID, Page: params.Page, Error: err.Error()})
		if errors.Is(err, query.ErrTransportExhausted) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	sortSpec.Apply(products)

	log.Info("Fetched products", "page", params.Page, "filter", filter.String(), "sort", sortSpec.String(), "count", len(products))
	s.eventBus.Publish(events.QueryCompleted{
		QueryID: queryID,
		Page:    params.Page,
		Filter:  filter.String(),
		Sort:    sortSpec.String(),
		Count:   len(products),
	})

	return products, nil
}

func (s *productService) attemptPublisher(queryID string) func(query.Attempt) {
	return func(a query.Attempt) {
		s.eventBus.Publish(events.PageRequested{
			QueryID: queryID,
			Page:    a.Page,
			Filter:  a.Filter,
			Attempt: a.Number,
		})
		if a.Err != nil {
			s.eventBus.Publish(events.PageFailed{
				QueryID: queryID,
				Page:    a.Page,
				Attempt: a.Number,
				Error:   a.Err.Error(),
			})
		}
	}
}
