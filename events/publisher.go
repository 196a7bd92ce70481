package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"paper-trader/models"
)

// TradeExecuted is emitted after a buy or sell commits.
type TradeExecuted struct {
	Ref        string          `json:"ref"`
	UserID     uint            `json:"user_id"`
	Symbol     string          `json:"symbol"`
	Type       string          `json:"type"`
	Shares     int64           `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishTrade(ctx context.Context, txn models.Transaction) error {
	event := TradeExecuted{
		Ref:        txn.Ref,
		UserID:     txn.UserID,
		Symbol:     txn.Symbol,
		Type:       txn.Type,
		Shares:     txn.Shares,
		Price:      txn.Price,
		Total:      txn.Total,
		ExecutedAt: txn.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(txn.Symbol),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
