package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/metrics"
	"storeadmin-be/internal/product"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// maxNumberAttempts bounds how often a creation is retried after
	// another transaction claimed the same order number.
	maxNumberAttempts = 3
	notifyTimeout     = 10 * time.Second
)

var tracer = otel.Tracer("storeadmin-be/internal/order")

// EventPublisher announces orders once they are committed.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o Order) error
}

// Notifier tells the customer their order was placed.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o Order) error
}

type Service interface {
	Create(ctx context.Context, in CreateOrderInput) (*CreateResult, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Update(ctx context.Context, id int64, in UpdateOrderInput) (*Order, error)
	Delete(ctx context.Context, id int64) error
	// Wait blocks until confirmation emails already started have finished.
	Wait()
}

type service struct {
	repo     Repository
	events   EventPublisher
	notifier Notifier
	metrics  *metrics.Collectors

	inflight sync.WaitGroup
}

// NewService wires the order service. events, notifier and m may be nil.
func NewService(repo Repository, events EventPublisher, notifier Notifier, m *metrics.Collectors) Service {
	if events == nil {
		events = nopPublisher{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &service{
		repo:     repo,
		events:   events,
		notifier: notifier,
		metrics:  m,
	}
}

func (s *service) Create(ctx context.Context, in CreateOrderInput) (_ *CreateResult, err error) {
	ctx, span := tracer.Start(ctx, "order.Create",
		trace.WithAttributes(attribute.Int("order.items", len(in.Items))),
	)
	timer := metrics.StartTimer()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		if s.metrics != nil {
			timer.ObserveDuration(s.metrics.OrderCreateLatency)
		}
	}()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	if err := in.Validate(); err != nil {
		s.countFailure(err)
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusPending
	}

	o := Order{
		CustomerName: in.CustomerName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Status:       status,
		Items:        in.Items,
		TotalAmount:  in.Items.Total(),
	}

	for attempt := 1; ; attempt++ {
		err = s.repo.WithinTx(ctx, func(tx Tx) error {
			return place(ctx, tx, &o)
		})
		if !errors.Is(err, ErrOrderNumberConflict) || attempt == maxNumberAttempts {
			break
		}
		log.Warn("order number taken, retrying",
			zap.String("order_number", o.OrderNumber),
			zap.Int("attempt", attempt),
		)
		if s.metrics != nil {
			s.metrics.OrderNumberRetries.Inc()
		}
	}
	if err != nil {
		s.countFailure(err)
		if isBusinessError(err) {
			log.Info("order rejected", zap.Error(err))
		} else {
			log.Error("failed to create order", zap.Error(err))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	span.SetAttributes(
		attribute.Int64("order.id", o.ID),
		attribute.String("order.number", o.OrderNumber),
	)
	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("total_amount", o.TotalAmount.String()),
	)

	s.afterCommit(ctx, o)

	return &CreateResult{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
	}, nil
}

// place allocates the order number, takes the items out of stock and inserts
// the order, all inside tx.
func place(ctx context.Context, tx Tx, o *Order) error {
	if err := tx.LockNumbering(ctx); err != nil {
		return fmt.Errorf("lock order numbering: %w", err)
	}

	last, err := tx.LastOrderNumber(ctx)
	if err != nil {
		return fmt.Errorf("read last order number: %w", err)
	}
	if o.OrderNumber, err = NextOrderNumber(last); err != nil {
		return fmt.Errorf("next order number: %w", err)
	}

	if err := product.AdjustStock(ctx, tx, o.Items.StockLines()); err != nil {
		return err
	}

	return tx.Insert(ctx, o)
}

func (s *service) afterCommit(ctx context.Context, o Order) {
	log := logger.FromCtx(ctx)

	if err := s.events.PublishOrderCreated(ctx, o); err != nil {
		log.Warn("failed to publish order created event",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(nctx, o); err != nil {
			log.Warn("failed to send order confirmation",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) Wait() {
	s.inflight.Wait()
}

func (s *service) countFailure(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.OrderFailures.WithLabelValues(failureReason(err)).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, product.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, product.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrOrderNumberConflict):
		return "number_conflict"
	default:
		return "storage"
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, product.ErrProductNotFound) ||
		errors.Is(err, product.ErrInsufficientStock)
}

func (s *service) List(ctx context.Context, f Filter) ([]Order, error) {
	ctx, span := tracer.Start(ctx, "order.List")
	defer span.End()

	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*Order, error) {
	ctx, span := tracer.Start(ctx, "order.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	return s.repo.GetByID(ctx, id)
}

// Update does not recompute total_amount from new items, nor does it touch
// product stock.
func (s *service) Update(ctx context.Context, id int64, in UpdateOrderInput) (*Order, error) {
	ctx, span := tracer.Start(ctx, "order.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			logger.FromCtx(ctx).Error("failed to update order", zap.Int64("order_id", id), zap.Error(err))
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete leaves product stock as it is.
func (s *service) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "order.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	return s.repo.Delete(ctx, id)
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderCreated(context.Context, Order) error { return nil }

type nopNotifier struct{}

func (nopNotifier) SendOrderConfirmation(context.Context, Order) error { return nil }
