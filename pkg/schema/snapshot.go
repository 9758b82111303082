package schema

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// SnapshotSchemaTextV1 is the durable shop-state snapshot layout.
// old_price equals 0 when the product carries no discount.
const SnapshotSchemaTextV1 = `{
	"type": "record",
	"namespace": "shop",
	"name": "snapshot",
	"fields": [
		{"name": "cart", "type": {"type": "array", "items": {
			"type": "record",
			"name": "cart_item",
			"fields": [
				{"name": "product", "type": {
					"type": "record",
					"name": "product",
					"fields": [
						{"name": "id", "type": "long"},
						{"name": "name", "type": "string"},
						{"name": "price", "type": "double"},
						{"name": "old_price", "type": "double"},
						{"name": "image", "type": "string"},
						{"name": "category", "type": "string"},
						{"name": "description", "type": "string"},
						{"name": "brand", "type": "string"},
						{"name": "in_stock", "type": "boolean"}
					]
				}},
				{"name": "quantity", "type": "long"}
			]
		}}},
		{"name": "wishlist", "type": {"type": "array", "items": "shop.product"}}
	]
}`

type (
	SnapshotV1 struct {
		Cart     []CartItemV1 `avro:"cart"`
		Wishlist []ProductV1  `avro:"wishlist"`
	}

	CartItemV1 struct {
		Product  ProductV1 `avro:"product"`
		Quantity int       `avro:"quantity"`
	}

	ProductV1 struct {
		ID          int     `avro:"id"`
		Name        string  `avro:"name"`
		Price       float64 `avro:"price"`
		OldPrice    float64 `avro:"old_price"`
		Image       string  `avro:"image"`
		Category    string  `avro:"category"`
		Description string  `avro:"description"`
		Brand       string  `avro:"brand"`
		InStock     bool    `avro:"in_stock"`
	}
)

// A SnapshotMarshaler round-trips [SnapshotV1] values through the avro
// binary encoding.
type SnapshotMarshaler struct {
	avroSchema avro.Schema
}

func NewSnapshotMarshaler() (SnapshotMarshaler, error) {
	const op = "NewSnapshotMarshaler"

	avroSchema, err := avro.Parse(SnapshotSchemaTextV1)
	if err != nil {
		return SnapshotMarshaler{}, fmt.Errorf("%s: %w", op, err)
	}
	return SnapshotMarshaler{avroSchema}, nil
}

func (m SnapshotMarshaler) Encode(v SnapshotV1) ([]byte, error) {
	return AvroEncodeFn(m.avroSchema)(v)
}

func (m SnapshotMarshaler) Decode(data []byte, v *SnapshotV1) error {
	return AvroDecodeFn(m.avroSchema)(data, v)
}
