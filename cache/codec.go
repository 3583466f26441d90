package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts values to and from the representation stored in the cache
// backend. JSON is the default because other processes read the same keys;
// msgpack is available where compactness matters more than readability.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

type jsonCodec struct{}

// JSONCodec returns the default JSON codec.
func JSONCodec() Codec { return jsonCodec{} }

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return "json" }

type msgpackCodec struct{}

// MsgpackCodec returns a msgpack codec. Entries written with it are not
// readable by JSON consumers of the shared cache.
func MsgpackCodec() Codec { return msgpackCodec{} }

func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) Name() string                       { return "msgpack" }
