package serializer

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
)

type ActivityView struct {
	ID           string `json:"id"`
	User         string `json:"user"`
	ActivityType string `json:"activity_type"`
	Duration     string `json:"duration"`
}

func NewActivityView(a *entity.Activity) ActivityView {
	return ActivityView{
		ID:           a.ID.Hex(),
		User:         a.User.Hex(),
		ActivityType: a.ActivityType,
		Duration:     FormatDuration(a.Duration),
	}
}

type ActivityInput struct {
	User         Field[string]   `json:"user"`
	ActivityType Field[string]   `json:"activity_type"`
	Duration     json.RawMessage `json:"duration"`
}

func (in *ActivityInput) Apply(ctx context.Context, users Users, a *entity.Activity, partial bool) error {
	fe := errs.FieldErrors{}
	user, err := resolveUser(ctx, users, fe, "user", in.User, partial)
	if err != nil {
		return err
	}
	checkString(fe, "activity_type", in.ActivityType, partial)

	var duration time.Duration
	hasDuration := len(in.Duration) > 0
	switch {
	case !hasDuration:
		if !partial {
			fe.Add("duration", msgRequired)
		}
	case string(in.Duration) == "null":
		fe.Add("duration", msgNull)
	default:
		duration, err = ParseDuration(in.Duration)
		if err != nil {
			fe.Add("duration", err.Error())
		} else if duration < 0 {
			fe.Add("duration", msgMinZero)
		}
	}

	if err := fe.OrNil(); err != nil {
		return err
	}

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if in.User.Set {
		a.User = user
	}
	if in.ActivityType.Set {
		a.ActivityType = in.ActivityType.Value
	}
	if hasDuration {
		a.Duration = duration
	}

	return nil
}
