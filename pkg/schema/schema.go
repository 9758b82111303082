// Package schema holds the avro record layouts for the persisted shop
// snapshot and the analytics event, plus the schema-registry serde.
package schema

import "github.com/hamba/avro/v2"

// AvroEncodeFn binds a schema to an encode closure in the shape the
// registry serde expects.
func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

// AvroDecodeFn binds a schema to a decode closure in the shape the
// registry serde expects.
func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}
