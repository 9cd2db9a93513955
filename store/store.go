// Package store persists entities in a document database.
//
// Every collection is addressed by application-generated ObjectIDs; callers set
// ID before Insert. Missing documents are reported as errs.ErrNotFound.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
)

const (
	UsersCollection       = "users"
	TeamsCollection       = "teams"
	ActivitiesCollection  = "activity"
	LeaderboardCollection = "leaderboard"
	WorkoutsCollection    = "workouts"
)

// Collection is the set of operations available on every entity type.
type Collection[T any] interface {
	Find(ctx context.Context, filter bson.M) ([]*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Insert(ctx context.Context, doc *T) error
	InsertMany(ctx context.Context, docs []*T) error
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	Drop(ctx context.Context) error
}

// TeamCollection adds set operations on the member relation.
type TeamCollection interface {
	Collection[entity.Team]

	// AddMembers inserts each id unless it is already a member. It reports
	// whether the member set changed.
	AddMembers(ctx context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error)
	RemoveMembers(ctx context.Context, id primitive.ObjectID, members ...primitive.ObjectID) (bool, error)
	// PullMember removes user from every team it belongs to.
	PullMember(ctx context.Context, user primitive.ObjectID) error
}

type Store struct {
	Users       Collection[entity.User]
	Teams       TeamCollection
	Activities  Collection[entity.Activity]
	Leaderboard Collection[entity.Leaderboard]
	Workouts    Collection[entity.Workout]

	ping func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}

	return s.ping(ctx)
}

// ByIDs builds a filter matching any of ids.
func ByIDs(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}

// ByUser matches documents referencing user.
func ByUser(user primitive.ObjectID) bson.M {
	return bson.M{"user": user}
}
