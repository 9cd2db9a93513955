package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"octofit-backend/entity"
	"octofit-backend/errs"
	"octofit-backend/metrics"
)

type mongoCollection[T any] struct {
	name string
	c    *mongo.Collection
}

func newMongoCollection[T any](db *mongo.Database, name string) *mongoCollection[T] {
	return &mongoCollection[T]{name: name, c: db.Collection(name)}
}

func (m *mongoCollection[T]) observe(op string, err error) error {
	metrics.ObserveStore(m.name, op, err)
	return err
}

func (m *mongoCollection[T]) Find(ctx context.Context, filter bson.M) ([]*T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := m.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, m.observe("find", fmt.Errorf("find %s: %w", m.name, err))
	}
	defer cursor.Close(context.Background())

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, m.observe("find", fmt.Errorf("decode %s: %w", m.name, err))
	}

	return docs, m.observe("find", nil)
}

func (m *mongoCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	doc := new(T)
	err := m.c.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, m.observe("find_one", errs.ErrNotFound)
		}

		return nil, m.observe("find_one", fmt.Errorf("find %s %s: %w", m.name, id.Hex(), err))
	}

	return doc, m.observe("find_one", nil)
}

func (m *mongoCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	n, err := m.c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, m.observe("count", fmt.Errorf("count %s: %w", m.name, err))
	}

	return n, m.observe("count", nil)
}

func (m *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	_, err := m.c.InsertOne(ctx, doc)
	if err != nil {
		return m.observe("insert", fmt.Errorf("insert into %s: %w", m.name, err))
	}

	return m.observe("insert", nil)
}

func (m *mongoCollection[T]) InsertMany(ctx context.Context, docs []*T) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d)
	}

	_, err := m.c.InsertMany(ctx, batch)
	if err != nil {
		return m.observe("insert_many", fmt.Errorf("bulk insert into %s: %w", m.name, err))
	}

	return m.observe("insert_many", nil)
}

func (m *mongoCollection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := m.c.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return m.observe("replace", fmt.Errorf("replace %s %s: %w", m.name, id.Hex(), err))
	}
	if res.MatchedCount == 0 {
		return m.observe("replace", errs.ErrNotFound)
	}

	return m.observe("replace", nil)
}

func (m *mongoCollection[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return m.observe("delete", fmt.Errorf("delete %s %s: %w", m.name, id.Hex(), err))
	}
	if res.DeletedCount == 0 {
		return m.observe("delete", errs.ErrNotFound)
	}

	return m.observe("delete", nil)
}

func (m *mongoCollection[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	res, err := m.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, m.observe("delete_many", fmt.Errorf("delete from %s: %w", m.name, err))
	}

	return res.DeletedCount, m.observe("delete_many", nil)
}

func (m *mongoCollection[T]) Drop(ctx context.Context) error {
	if err := m.c.Drop(ctx); err != nil {
		return m.observe("drop", fmt.Errorf("drop %s: %w", m.name, err))
	}

	return m.observe("drop", nil)
}

type mongoTeams struct {
	*mongoCollection[entity.Team]
}

func (m *mongoTeams) AddMembers(ctx context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error) {
	res, err := m.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"members": bson.M{"$each": members}}})
	if err != nil {
		return false, m.observe("add_members", fmt.Errorf("add members to team %s: %w", id.Hex(), err))
	}
	if res.MatchedCount == 0 {
		return false, m.observe("add_members", errs.ErrNotFound)
	}

	return res.ModifiedCount > 0, m.observe("add_members", nil)
}

func (m *mongoTeams) RemoveMembers(ctx context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error) {
	res, err := m.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"members": bson.M{"$in": members}}})
	if err != nil {
		return false, m.observe("remove_members", fmt.Errorf("remove members from team %s: %w", id.Hex(), err))
	}
	if res.MatchedCount == 0 {
		return false, m.observe("remove_members", errs.ErrNotFound)
	}

	return res.ModifiedCount > 0, m.observe("remove_members", nil)
}

func (m *mongoTeams) PullMember(ctx context.Context, user primitive.ObjectID) error {
	_, err := m.c.UpdateMany(ctx, bson.M{"members": user}, bson.M{"$pull": bson.M{"members": user}})
	if err != nil {
		return m.observe("pull_member", fmt.Errorf("pull member %s: %w", user.Hex(), err))
	}

	return m.observe("pull_member", nil)
}

// NewMongo builds a Store over db, one collection per entity type.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:       newMongoCollection[entity.User](db, UsersCollection),
		Teams:       &mongoTeams{newMongoCollection[entity.Team](db, TeamsCollection)},
		Activities:  newMongoCollection[entity.Activity](db, ActivitiesCollection),
		Leaderboard: newMongoCollection[entity.Leaderboard](db, LeaderboardCollection),
		Workouts:    newMongoCollection[entity.Workout](db, WorkoutsCollection),
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
}
