package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type Workout struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}
