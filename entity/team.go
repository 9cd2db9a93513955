package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Team members form a set; order carries no meaning.
type Team struct {
	ID      primitive.ObjectID   `bson:"_id"`
	Name    string               `bson:"name"`
	Members []primitive.ObjectID `bson:"members"`
}

func NewTeam(name string, members ...primitive.ObjectID) *Team {
	return &Team{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Members: UniqueIDs(members),
	}
}

// UniqueIDs drops repeated ids, keeping the first occurrence. Never returns nil.
func UniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
