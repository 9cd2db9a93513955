package serializer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
)

type LeaderboardView struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Score int64  `json:"score"`
}

func NewLeaderboardView(l *entity.Leaderboard) LeaderboardView {
	return LeaderboardView{
		ID:    l.ID.Hex(),
		User:  l.User.Hex(),
		Score: l.Score,
	}
}

type LeaderboardInput struct {
	User  Field[string] `json:"user"`
	Score Field[int64]  `json:"score"`
}

func (in *LeaderboardInput) Apply(ctx context.Context, users Users, l *entity.Leaderboard, partial bool) error {
	fe := errs.FieldErrors{}
	user, err := resolveUser(ctx, users, fe, "user", in.User, partial)
	if err != nil {
		return err
	}
	in.Score.ok(fe, "score", partial)
	if err := fe.OrNil(); err != nil {
		return err
	}

	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if in.User.Set {
		l.User = user
	}
	if in.Score.Set {
		l.Score = in.Score.Value
	}

	return nil
}
