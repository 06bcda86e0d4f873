// Package lightjson binds JSON text onto Go structs declaratively.
//
// The target struct is the schema: exported fields are bound from the member
// of the same name (exact match first, then case-insensitive), embedded structs
// contribute their fields after the struct's own, and struct tags rename or
// exclude fields:
//
//	type Order struct {
//		ID    int64    `lightjson:"name=order_id"`
//		Items []Item
//		Note  string   `lightjson:"-"`
//	}
//
// Binding is best effort. A field whose member is missing or cannot be
// coerced keeps its initial value and is reported in Result.Issues; only
// failures that leave no record at all are returned as errors.
//
// Results are memoized per (struct type, input digest) in a size-bounded LRU
// cache, so repeated input returns the same pointer.
//
// Typical usage:
//
//	o := lightjson.FromJSON[Order](text)
//
//	b := lightjson.New(lightjson.WithCapacity(1<<20), lightjson.WithLogger(logger))
//	res, err := lightjson.Decode[Order](b, data)
package lightjson
