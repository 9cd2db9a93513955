package serializer

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
)

type WorkoutView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewWorkoutView(w *entity.Workout) WorkoutView {
	return WorkoutView{
		ID:          w.ID.Hex(),
		Name:        w.Name,
		Description: w.Description,
	}
}

type WorkoutInput struct {
	Name        Field[string] `json:"name"`
	Description Field[string] `json:"description"`
}

func (in *WorkoutInput) Apply(w *entity.Workout, partial bool) error {
	fe := errs.FieldErrors{}
	checkString(fe, "name", in.Name, partial)
	checkString(fe, "description", in.Description, partial)
	if err := fe.OrNil(); err != nil {
		return err
	}

	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if in.Name.Set {
		w.Name = in.Name.Value
	}
	if in.Description.Set {
		w.Description = in.Description.Value
	}

	return nil
}
