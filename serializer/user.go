package serializer

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
)

// UserView never carries the password hash.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserView(u *entity.User) UserView {
	return UserView{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}

type UserInput struct {
	Username Field[string] `json:"username"`
	Email    Field[string] `json:"email"`
	Password Field[string] `json:"password"`
}

func (in *UserInput) Apply(u *entity.User, partial bool) error {
	fe := errs.FieldErrors{}
	checkString(fe, "username", in.Username, partial)
	checkEmail(fe, "email", in.Email, partial)
	checkString(fe, "password", in.Password, partial)
	if err := fe.OrNil(); err != nil {
		return err
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if in.Username.Set {
		u.Username = in.Username.Value
	}
	if in.Email.Set {
		u.Email = in.Email.Value
	}
	if in.Password.Set {
		if err := u.SetPassword(in.Password.Value); err != nil {
			return errs.ErrCryptographic
		}
	}

	return nil
}
