package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Keyed is implemented by roster entries. The key is the student ID.
type Keyed interface {
	Key() string
}

// Roster is an insertion-ordered set of candidates keyed by student ID.
// Membership checks are O(1); iteration follows arrival order.
// It encodes as a plain array in both JSON and BSON. Has and Get never write,
// so a roster shared between readers needs no lock of its own.
type Roster[T Keyed] struct {
	items []T
	index map[string]int
}

// NewRoster builds a roster from items, keeping the first entry for a duplicated key.
func NewRoster[T Keyed](items ...T) Roster[T] {
	r := Roster[T]{index: make(map[string]int, len(items))}
	for _, item := range items {
		r.Append(item)
	}
	return r
}

// Len returns the number of entries.
func (r *Roster[T]) Len() int {
	return len(r.items)
}

// Has reports whether key is in the roster.
func (r *Roster[T]) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Get returns the entry for key and its zero-based index.
func (r *Roster[T]) Get(key string) (T, int, bool) {
	i, ok := r.index[key]
	if !ok {
		var zero T
		return zero, -1, false
	}
	return r.items[i], i, true
}

// Items returns a copy of the entries in order.
func (r *Roster[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Append adds item at the tail. Returns false if the key is already present.
func (r *Roster[T]) Append(item T) bool {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[item.Key()]; ok {
		return false
	}
	r.index[item.Key()] = len(r.items)
	r.items = append(r.items, item)
	return true
}

// Remove deletes the entry for key, preserving the order of the rest.
func (r *Roster[T]) Remove(key string) (T, bool) {
	item, i, ok := r.Get(key)
	if !ok {
		return item, false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.reindex()
	return item, true
}

// PopFront removes and returns the head entry.
func (r *Roster[T]) PopFront() (T, bool) {
	if len(r.items) == 0 {
		var zero T
		return zero, false
	}
	head := r.items[0]
	r.items = append([]T(nil), r.items[1:]...)
	r.reindex()
	return head, true
}

// Rewrite replaces every entry with fn(position, entry), position being 1-based.
// fn must not change the entry key.
func (r *Roster[T]) Rewrite(fn func(position int, item T) T) {
	for i, item := range r.items {
		r.items[i] = fn(i+1, item)
	}
}

// Clone returns an independent copy.
func (r *Roster[T]) Clone() Roster[T] {
	return NewRoster(r.items...)
}

func (r *Roster[T]) reindex() {
	r.index = make(map[string]int, len(r.items))
	for i, item := range r.items {
		r.index[item.Key()] = i
	}
}

func (r Roster[T]) list() []T {
	if r.items == nil {
		return []T{}
	}
	return r.items
}

func (r *Roster[T]) load(items []T) {
	*r = NewRoster(items...)
}

// MarshalJSON encodes the roster as an array.
func (r Roster[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.list())
}

// UnmarshalJSON decodes an array into the roster.
func (r *Roster[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	r.load(items)
	return nil
}

// MarshalBSONValue encodes the roster as a BSON array.
func (r Roster[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.list())
}

// UnmarshalBSONValue decodes a BSON array into the roster.
func (r *Roster[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var items []T
	if t != bsontype.Null {
		if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&items); err != nil {
			return err
		}
	}
	r.load(items)
	return nil
}
