package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

const EventOrderCreated = "order.created"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	RequestID     string          `json:"request_id,omitempty"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID      int64            `json:"order_id"`
	OrderNumber  string           `json:"order_number"`
	CustomerName string           `json:"customer_name"`
	Email        string           `json:"email"`
	Status       string           `json:"status"`
	Items        []order.LineItem `json:"items"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
}

// Publisher is satisfied by *Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafka.Header) error
}

// OrderEvents turns committed orders into order.created messages keyed by
// order number.
type OrderEvents struct {
	pub    Publisher
	source string
}

func NewOrderEvents(pub Publisher, source string) *OrderEvents {
	return &OrderEvents{pub: pub, source: source}
}

func (e *OrderEvents) PublishOrderCreated(ctx context.Context, o order.Order) error {
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Status:       o.Status,
		Items:        o.Items,
		TotalAmount:  o.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.source,
		RequestID:     logger.RequestIDFrom(ctx),
		CorrelationID: o.OrderNumber,
		Payload:       payload,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		env.TraceID = sc.TraceID().String()
	}

	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	return e.pub.Publish(
		[]byte(o.OrderNumber),
		b,
		kafka.Header{Key: "event_type", Value: []byte(EventOrderCreated)},
	)
}
