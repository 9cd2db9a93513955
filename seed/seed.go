// Package seed repopulates the store with fixed sample data.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/store"
)

var usernames = []string{"eaglestar", "swiftcode", "octoprime", "marinediver", "codehawk"}

type activitySample struct {
	kind     string
	duration time.Duration
}

var activities = []activitySample{
	{"Cycling", time.Hour},
	{"Crossfit", 2 * time.Hour},
	{"Running", time.Hour + 30*time.Minute},
	{"Strength", 30 * time.Minute},
	{"Swimming", time.Hour + 15*time.Minute},
}

var scores = []int64{100, 90, 95, 85, 80}

var workouts = []entity.Workout{
	{Name: "Cycling Training", Description: "Training for a road cycling event"},
	{Name: "Crossfit", Description: "Training for a crossfit competition"},
	{Name: "Running Training", Description: "Training for a marathon"},
	{Name: "Strength Training", Description: "Training for strength"},
	{Name: "Swimming Training", Description: "Training for a swimming competition"},
}

// Blue Team and Gold Team membership, as indexes into the seeded users.
var teams = []struct {
	name    string
	members []int
}{
	{"Blue Team", []int{0, 2, 4}},
	{"Gold Team", []int{1, 3}},
}

// Populate drops every collection and inserts the sample records, writing
// progress to out. It stops at the first failure and leaves whatever was
// already written in place.
func Populate(ctx context.Context, s *store.Store, out io.Writer) error {
	if err := drop(ctx, s); err != nil {
		return err
	}
	fmt.Fprintln(out, "Dropped existing collections. Creating new test data...")

	users := make([]*entity.User, 0, len(usernames))
	for _, name := range usernames {
		u := &entity.User{
			ID:       primitive.NewObjectID(),
			Username: name,
			Email:    name + "@mschool.edu",
		}
		if err := u.SetPassword(name + "password"); err != nil {
			return fmt.Errorf("hash password for %s: %w", name, err)
		}
		users = append(users, u)
	}
	if err := s.Users.InsertMany(ctx, users); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d users\n", len(users))

	for _, t := range teams {
		team := entity.NewTeam(t.name)
		if err := s.Teams.Insert(ctx, team); err != nil {
			return err
		}

		members := make([]primitive.ObjectID, 0, len(t.members))
		for _, i := range t.members {
			members = append(members, users[i].ID)
		}
		if _, err := s.Teams.AddMembers(ctx, team.ID, members...); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Created teams and added members")

	acts := make([]*entity.Activity, 0, len(activities))
	for i, a := range activities {
		acts = append(acts, &entity.Activity{
			ID:           primitive.NewObjectID(),
			User:         users[i].ID,
			ActivityType: a.kind,
			Duration:     a.duration,
		})
	}
	if err := s.Activities.InsertMany(ctx, acts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d activities\n", len(acts))

	entries := make([]*entity.Leaderboard, 0, len(scores))
	for i, score := range scores {
		entries = append(entries, &entity.Leaderboard{
			ID:    primitive.NewObjectID(),
			User:  users[i].ID,
			Score: score,
		})
	}
	if err := s.Leaderboard.InsertMany(ctx, entries); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d leaderboard entries\n", len(entries))

	ws := make([]*entity.Workout, 0, len(workouts))
	for i := range workouts {
		w := workouts[i]
		w.ID = primitive.NewObjectID()
		ws = append(ws, &w)
	}
	if err := s.Workouts.InsertMany(ctx, ws); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d workouts\n", len(ws))

	fmt.Fprintln(out, "Successfully populated the database with test data.")
	return nil
}

func drop(ctx context.Context, s *store.Store) error {
	steps := []func(context.Context) error{
		s.Users.Drop,
		s.Teams.Drop,
		s.Activities.Drop,
		s.Leaderboard.Drop,
		s.Workouts.Drop,
	}
	for _, d := range steps {
		if err := d(ctx); err != nil {
			return err
		}
	}

	return nil
}
