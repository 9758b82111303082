package schema

// ShopEventSchemaTextV1 is the analytics stream record layout.
const ShopEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shop",
	"name": "event",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "quantity", "type": "long"},
		{"name": "at", "type": "long"}
	]
}`

// ShopEventV1 carries the event timestamp as unix milliseconds.
type ShopEventV1 struct {
	Type      string `avro:"type"`
	ProductID int    `avro:"product_id"`
	Quantity  int    `avro:"quantity"`
	At        int64  `avro:"at"`
}
