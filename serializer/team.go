package serializer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
	"octofit-backend/store"
)

// MemberView is the minimal nested form of a team member.
type MemberView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type TeamView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Members []MemberView `json:"members"`
}

// NewTeamView renders t; members missing from users keep an empty username.
func NewTeamView(t *entity.Team, users map[primitive.ObjectID]*entity.User) TeamView {
	members := make([]MemberView, 0, len(t.Members))
	for _, id := range t.Members {
		m := MemberView{ID: id.Hex()}
		if u, ok := users[id]; ok {
			m.Username = u.Username
		}
		members = append(members, m)
	}

	return TeamView{
		ID:      t.ID.Hex(),
		Name:    t.Name,
		Members: members,
	}
}

// LoadMembers fetches every user referenced by teams in one query.
func LoadMembers(ctx context.Context, users Users, teams ...*entity.Team) (map[primitive.ObjectID]*entity.User, error) {
	var ids []primitive.ObjectID
	for _, t := range teams {
		ids = append(ids, t.Members...)
	}
	ids = entity.UniqueIDs(ids)

	out := make(map[primitive.ObjectID]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	found, err := users.Find(ctx, store.ByIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		out[u.ID] = u
	}

	return out, nil
}

type TeamInput struct {
	Name    Field[string]   `json:"name"`
	Members Field[[]string] `json:"members"`
}

// Apply replaces the member set when members is present; it defaults to empty on create.
func (in *TeamInput) Apply(ctx context.Context, users Users, t *entity.Team, partial bool) error {
	fe := errs.FieldErrors{}
	checkString(fe, "name", in.Name, partial)

	var members []primitive.ObjectID
	if in.Members.Set && in.Members.ok(fe, "members", partial) {
		var err error
		members, err = resolveUsers(ctx, users, fe, "members", in.Members.Value)
		if err != nil {
			return err
		}
	}
	if err := fe.OrNil(); err != nil {
		return err
	}

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if in.Name.Set {
		t.Name = in.Name.Value
	}
	if in.Members.Set {
		t.Members = members
	}
	if t.Members == nil {
		t.Members = []primitive.ObjectID{}
	}

	return nil
}

// MembersInput is the body of the add-members endpoint.
type MembersInput struct {
	Members Field[[]string] `json:"members"`
}

func (in *MembersInput) Resolve(ctx context.Context, users Users) ([]primitive.ObjectID, error) {
	fe := errs.FieldErrors{}
	if !in.Members.ok(fe, "members", false) {
		return nil, fe
	}

	ids, err := resolveUsers(ctx, users, fe, "members", in.Members.Value)
	if err != nil {
		return nil, err
	}

	return ids, fe.OrNil()
}
