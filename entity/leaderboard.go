package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type Leaderboard struct {
	ID    primitive.ObjectID `bson:"_id"`
	User  primitive.ObjectID `bson:"user"`
	Score int64              `bson:"score"`
}
