package kafka

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/lovoo/goka"

	"github.com/santeh/storefront/internal/core/domain"
	"github.com/santeh/storefront/internal/core/port"
	"github.com/santeh/storefront/pkg/schema"
)

var _ port.TrendingReader = (*TrendingView)(nil)

// A shopEventCodec used for serde [schema.ShopEventV1]
type shopEventCodec struct {
	serde Serde
}

func newShopEventCodec(s Serde) shopEventCodec {
	return shopEventCodec{s}
}

func (c shopEventCodec) Encode(v any) ([]byte, error) {
	const op = "shopEventCodec.Encode"
	if _, ok := v.(schema.ShopEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c shopEventCodec) Decode(data []byte) (any, error) {
	const op = "shopEventCodec.Decode"
	var s schema.ShopEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A counterCodec used for the per-product add-to-cart counters in the
// group table.
type counterCodec struct{}

func (counterCodec) Encode(v any) ([]byte, error) {
	const op = "counterCodec.Encode"
	n, ok := v.(int64)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), n, 10), nil
}

func (counterCodec) Decode(data []byte) (any, error) {
	const op = "counterCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return n, nil
}

// A TrendingProcessor consumes the shop-events stream and persists
// per-product cart-addition counters keyed by product id.
type TrendingProcessor struct {
	gp *goka.Processor
}

func NewTrendingProcessor(
	seedBrokers []string, stream, group string, eventSerde Serde,
) (TrendingProcessor, error) {
	const op = "NewTrendingProcessor"

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), newShopEventCodec(eventSerde), processEvent),
		goka.Persist(counterCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return TrendingProcessor{}, opErr(err, op)
	}

	return TrendingProcessor{gp}, nil
}

func processEvent(ctx goka.Context, msg any) {
	evt, ok := msg.(schema.ShopEventV1)
	if !ok {
		return
	}

	if !countsTowardTrending(evt) {
		return
	}

	var count int64
	if v := ctx.Value(); v != nil {
		count = v.(int64)
	}
	ctx.SetValue(count + int64(evt.Quantity))
}

// Only actual cart additions count towards trending.
func countsTowardTrending(evt schema.ShopEventV1) bool {
	switch evt.Type {
	case domain.EventCartAdd, domain.EventWishlistMove:
		return true
	}
	return false
}

func (p TrendingProcessor) Run(ctx context.Context) {
	const op = "TrendingProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p TrendingProcessor) Close() {
	const op = "TrendingProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A TrendingView serves the aggregated counters from the group table.
type TrendingView struct {
	gv *goka.View
}

func NewTrendingView(
	seedBrokers []string, group string,
) (*TrendingView, error) {
	const op = "NewTrendingView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		counterCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &TrendingView{gv}, nil
}

func (v *TrendingView) Run(ctx context.Context) {
	const op = "TrendingView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Trending returns the counters ordered by cart additions, busiest
// products first.
func (v *TrendingView) Trending(
	ctx context.Context,
) ([]domain.ProductTrend, error) {
	const op = "TrendingView.Trending"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	it, err := v.gv.Iterator()
	if err != nil {
		return nil, opErr(err, op)
	}
	defer it.Release()

	var ts []domain.ProductTrend
	for it.Next() {
		id, err := strconv.Atoi(it.Key())
		if err != nil {
			continue
		}

		val, err := it.Value()
		if err != nil {
			return nil, opErr(err, op)
		}

		count, ok := val.(int64)
		if !ok {
			continue
		}
		ts = append(ts, domain.ProductTrend{ProductID: id, CartAdds: count})
	}

	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CartAdds != ts[j].CartAdds {
			return ts[i].CartAdds > ts[j].CartAdds
		}
		return ts[i].ProductID < ts[j].ProductID
	})

	return ts, nil
}
