package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
)

var _ port.EventsProducer = (*ShopEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A ShopEventsProducer publishes [domain.ShopEvent] records keyed by
// product id, so the trending processor aggregates per product.
type ShopEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewShopEventsProducer(
	opts ...ProducerOpt,
) (ShopEventsProducer, error) {
	const op = "NewShopEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ShopEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ShopEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return ShopEventsProducer{
		encoder:  options.encoder,
		producer: p,
		opPrefix: opPrefix,
	}, nil
}

func (p ShopEventsProducer) Close() {
	p.producer.close()
}

func (p ShopEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ShopEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p ShopEventsProducer) createRecord(
	evt domain.ShopEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := shopEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	msgKey := []byte(strconv.Itoa(s.ProductID))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}
