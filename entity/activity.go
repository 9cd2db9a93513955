package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID           primitive.ObjectID `bson:"_id"`
	User         primitive.ObjectID `bson:"user"`
	ActivityType string             `bson:"activity_type"`
	Duration     time.Duration      `bson:"duration"`
}
