package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
)

// memoryCollection keeps BSON-encoded documents in insertion order so reads
// never alias stored state. Filters support equality, array membership and $in.
type memoryCollection[T any] struct {
	name string

	mu      sync.RWMutex
	entries []memoryEntry
}

type memoryEntry struct {
	id  primitive.ObjectID
	raw bson.Raw
}

func newMemoryCollection[T any](name string) *memoryCollection[T] {
	return &memoryCollection[T]{name: name}
}

func encodeEntry(doc interface{}) (memoryEntry, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return memoryEntry{}, err
	}

	id, ok := bson.Raw(raw).Lookup("_id").ObjectIDOK()
	if !ok || id.IsZero() {
		return memoryEntry{}, fmt.Errorf("document has no ObjectID _id")
	}

	return memoryEntry{id: id, raw: raw}, nil
}

func (m *memoryCollection[T]) decode(e memoryEntry) (*T, error) {
	doc := new(T)
	if err := bson.Unmarshal(e.raw, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.name, err)
	}

	return doc, nil
}

func (m *memoryCollection[T]) indexOf(id primitive.ObjectID) int {
	for i, e := range m.entries {
		if e.id == id {
			return i
		}
	}

	return -1
}

func (m *memoryCollection[T]) matching(filter bson.M) ([]int, error) {
	var out []int
	for i, e := range m.entries {
		var doc bson.M
		if err := bson.Unmarshal(e.raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", m.name, err)
		}
		if matches(doc, filter) {
			out = append(out, i)
		}
	}

	return out, nil
}

func (m *memoryCollection[T]) Find(_ context.Context, filter bson.M) ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, err := m.matching(filter)
	if err != nil {
		return nil, err
	}

	docs := make([]*T, 0, len(idx))
	for _, i := range idx {
		doc, err := m.decode(m.entries[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (m *memoryCollection[T]) FindByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, errs.ErrNotFound
	}

	return m.decode(m.entries[i])
}

func (m *memoryCollection[T]) Count(_ context.Context, filter bson.M) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, err := m.matching(filter)
	if err != nil {
		return 0, err
	}

	return int64(len(idx)), nil
}

func (m *memoryCollection[T]) Insert(_ context.Context, doc *T) error {
	e, err := encodeEntry(doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", m.name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(e.id) >= 0 {
		return fmt.Errorf("insert into %s: duplicate _id %s", m.name, e.id.Hex())
	}
	m.entries = append(m.entries, e)

	return nil
}

func (m *memoryCollection[T]) InsertMany(ctx context.Context, docs []*T) error {
	for _, d := range docs {
		if err := m.Insert(ctx, d); err != nil {
			return err
		}
	}

	return nil
}

func (m *memoryCollection[T]) Replace(_ context.Context, id primitive.ObjectID, doc *T) error {
	e, err := encodeEntry(doc)
	if err != nil {
		return fmt.Errorf("replace %s: %w", m.name, err)
	}
	if e.id != id {
		return fmt.Errorf("replace %s %s: _id is immutable", m.name, id.Hex())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return errs.ErrNotFound
	}
	m.entries[i] = e

	return nil
}

func (m *memoryCollection[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return errs.ErrNotFound
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)

	return nil
}

func (m *memoryCollection[T]) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.matching(filter)
	if err != nil {
		return 0, err
	}

	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	kept := m.entries[:0]
	for i, e := range m.entries {
		if _, ok := drop[i]; !ok {
			kept = append(kept, e)
		}
	}
	m.entries = kept

	return int64(len(idx)), nil
}

func (m *memoryCollection[T]) Drop(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}

// update rewrites every document selected by idx with fn. Caller holds the lock.
func (m *memoryCollection[T]) update(idx []int, fn func(*T)) error {
	for _, i := range idx {
		doc, err := m.decode(m.entries[i])
		if err != nil {
			return err
		}
		fn(doc)

		e, err := encodeEntry(doc)
		if err != nil {
			return fmt.Errorf("update %s: %w", m.name, err)
		}
		m.entries[i] = e
	}

	return nil
}

type memoryTeams struct {
	*memoryCollection[entity.Team]
}

func (m *memoryTeams) AddMembers(_ context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error) {
	return m.updateMembers(id, func(ids []primitive.ObjectID) []primitive.ObjectID {
		return entity.UniqueIDs(append(ids, members...))
	})
}

func (m *memoryTeams) RemoveMembers(_ context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error) {
	return m.updateMembers(id, func(ids []primitive.ObjectID) []primitive.ObjectID {
		return without(ids, members)
	})
}

// updateMembers rewrites the member set of team id and reports whether its size changed.
func (m *memoryTeams) updateMembers(id primitive.ObjectID, fn func([]primitive.ObjectID) []primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, errs.ErrNotFound
	}

	changed := false
	err := m.update([]int{i}, func(t *entity.Team) {
		before := len(t.Members)
		t.Members = fn(t.Members)
		changed = len(t.Members) != before
	})

	return changed, err
}

func (m *memoryTeams) PullMember(_ context.Context, user primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.matching(bson.M{"members": user})
	if err != nil {
		return err
	}

	return m.update(idx, func(t *entity.Team) {
		t.Members = without(t.Members, []primitive.ObjectID{user})
	})
}

func without(ids, drop []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		keep := true
		for _, d := range drop {
			if id == d {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, id)
		}
	}

	return out
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		got := doc[key]

		if cond, ok := want.(bson.M); ok {
			in, ok := cond["$in"]
			if !ok || !matchesAny(got, in) {
				return false
			}
			continue
		}

		if !matchesValue(got, want) {
			return false
		}
	}

	return true
}

func matchesAny(got, in interface{}) bool {
	v := reflect.ValueOf(in)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return false
	}

	for i := 0; i < v.Len(); i++ {
		if matchesValue(got, v.Index(i).Interface()) {
			return true
		}
	}

	return false
}

// matchesValue follows MongoDB: an array field matches when any element does.
func matchesValue(got, want interface{}) bool {
	if arr, ok := got.(primitive.A); ok {
		for _, v := range arr {
			if reflect.DeepEqual(v, want) {
				return true
			}
		}
		return false
	}

	return reflect.DeepEqual(got, want)
}

// NewMemory builds a Store that lives in process memory.
func NewMemory() *Store {
	return &Store{
		Users:       newMemoryCollection[entity.User](UsersCollection),
		Teams:       &memoryTeams{newMemoryCollection[entity.Team](TeamsCollection)},
		Activities:  newMemoryCollection[entity.Activity](ActivitiesCollection),
		Leaderboard: newMemoryCollection[entity.Leaderboard](LeaderboardCollection),
		Workouts:    newMemoryCollection[entity.Workout](WorkoutsCollection),
	}
}
