package upstream

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// The backend wraps collection responses inconsistently: sometimes a bare
// array, sometimes an object with the payload under one of several keys.
// Normalization is centralized here with an explicit, ordered key list per
// endpoint; any shape outside the recognized set yields an empty sequence.

// catalogKeys is the wrapper-key priority for the categories endpoint.
var catalogKeys = []string{"results", "categories"}

// productKeys is the wrapper-key priority for the category detail endpoint:
// the backend's primary shape wraps products under "products".
var productKeys = []string{"products", "results"}

// arrayEnvelope extracts the raw JSON array from data. A bare array is
// returned as-is; an object is probed for the given keys in priority order,
// taking the first one holding an array. A nil result with nil error means
// the document is valid JSON but no recognized shape matched. A body that is
// not JSON at all (an HTML error page behind a 2xx, say) is an error.
func arrayEnvelope(data []byte, keys ...string) (jx.Raw, error) {
	d := jx.DecodeBytes(data)
	switch tt := d.Next(); tt {
	case jx.Array:
		raw, err := d.Raw()
		if err != nil {
			return nil, errors.Wrap(err, "read array")
		}
		return raw, nil
	case jx.Object:
		found := make(map[string]jx.Raw, len(keys))
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			found[key] = raw
			return nil
		}); err != nil {
			return nil, errors.Wrap(err, "read object")
		}
		for _, key := range keys {
			if raw, ok := found[key]; ok && raw.Type() == jx.Array {
				return raw, nil
			}
		}
		return nil, nil
	case jx.Invalid:
		return nil, errors.New("body is not JSON")
	default:
		return nil, nil
	}
}

// decodeSeq normalizes data into a sequence of T, preserving element order.
// Unrecognized envelopes decode to an empty non-nil slice.
func decodeSeq[T any](data []byte, keys ...string) ([]T, error) {
	raw, err := arrayEnvelope(data, keys...)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "decode elements")
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
