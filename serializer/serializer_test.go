package serializer_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

func fieldErrors(err error) errs.FieldErrors {
	var fe errs.FieldErrors
	Expect(errors.As(err, &fe)).To(BeTrue(), "expected field errors, got %v", err)
	return fe
}

var _ = Describe("Serializer", func() {
	ctx := context.Background()
	var s *store.Store
	var alice *entity.User

	BeforeEach(func() {
		s = store.NewMemory()
		alice = &entity.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@mschool.edu"}
		Expect(s.Users.Insert(ctx, alice)).To(Succeed())
	})

	Describe("Decode", func() {
		Specify("wrong types are field errors", func() {
			in := &serializer.LeaderboardInput{}
			Expect(serializer.Decode([]byte(`{"score": "lots"}`), in)).To(Succeed())
			fe := fieldErrors(in.Apply(ctx, s.Users, &entity.Leaderboard{}, true))
			Expect(fe).To(Equal(errs.FieldErrors{"score": {"Incorrect type."}}))
		})

		Specify("null is not the same as absent", func() {
			in := &serializer.WorkoutInput{}
			Expect(serializer.Decode([]byte(`{"name": null}`), in)).To(Succeed())
			Expect(in.Name.Set).To(BeTrue())
			Expect(in.Name.Null).To(BeTrue())
			Expect(in.Description.Set).To(BeFalse())

			w := &entity.Workout{Name: "Crossfit"}
			fe := fieldErrors(in.Apply(w, true))
			Expect(fe).To(Equal(errs.FieldErrors{"name": {"This field may not be null."}}))
			Expect(w.Name).To(Equal("Crossfit"))

			fe = fieldErrors(in.Apply(&entity.Workout{}, false))
			Expect(fe["name"]).To(ConsistOf("This field may not be null."))
			Expect(fe["description"]).To(ConsistOf("This field is required."))
		})

		Specify("a non-object body is malformed", func() {
			err := serializer.Decode([]byte(`[]`), &serializer.WorkoutInput{})
			Expect(errors.Is(err, errs.ErrInvalidBody)).To(BeTrue())
		})

		Specify("broken JSON is a malformed body", func() {
			err := serializer.Decode([]byte(`{"score": `), &serializer.LeaderboardInput{})
			Expect(errors.Is(err, errs.ErrInvalidBody)).To(BeTrue())
		})

		Specify("an empty body is an empty object", func() {
			in := &serializer.WorkoutInput{}
			Expect(serializer.Decode(nil, in)).To(Succeed())
			Expect(in.Name.Set).To(BeFalse())
		})
	})

	Describe("User", func() {
		Specify("required fields on create", func() {
			err := (&serializer.UserInput{}).Apply(&entity.User{}, false)
			fe := fieldErrors(err)
			Expect(fe).To(HaveKey("username"))
			Expect(fe).To(HaveKey("email"))
			Expect(fe).To(HaveKey("password"))
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		Specify("partial update keeps untouched fields and hashes passwords", func() {
			u := &entity.User{}
			email, password := "octoprime@mschool.edu", "octoprimepassword"
			in := &serializer.UserInput{
				Username: serializer.Some("octoprime"),
				Email:    serializer.Some(email),
				Password: serializer.Some(password),
			}
			Expect(in.Apply(u, false)).To(Succeed())
			Expect(u.ID.IsZero()).To(BeFalse())
			Expect(u.Password).NotTo(Equal(password))
			Expect(u.CheckPassword(password)).To(BeTrue())

			Expect((&serializer.UserInput{Username: serializer.Some("octoprime2")}).Apply(u, true)).To(Succeed())
			Expect(u.Username).To(Equal("octoprime2"))
			Expect(u.Email).To(Equal(email))

			v := serializer.NewUserView(u)
			Expect(v.ID).To(Equal(u.ID.Hex()))
			Expect(v.Email).To(Equal(email))
		})

		Specify("bad email", func() {
			err := (&serializer.UserInput{Email: serializer.Some("not-an-email")}).Apply(&entity.User{}, true)
			Expect(fieldErrors(err)).To(HaveKeyWithValue("email", []string{"Enter a valid email address."}))
		})

		Specify("blank username", func() {
			err := (&serializer.UserInput{Username: serializer.Some("  ")}).Apply(&entity.User{}, true)
			Expect(fieldErrors(err)).To(HaveKeyWithValue("username", []string{"This field may not be blank."}))
		})
	})

	Describe("Activity", func() {
		Specify("valid input", func() {
			a := &entity.Activity{}
			in := &serializer.ActivityInput{
				User:         serializer.Some(alice.ID.Hex()),
				ActivityType: serializer.Some("Running"),
				Duration:     []byte(`"01:30:00"`),
			}
			Expect(in.Apply(ctx, s.Users, a, false)).To(Succeed())
			Expect(a.User).To(Equal(alice.ID))
			Expect(a.Duration).To(Equal(90 * time.Minute))
			Expect(serializer.NewActivityView(a).Duration).To(Equal("01:30:00"))
		})

		Specify("unknown user and negative duration", func() {
			missing := primitive.NewObjectID().Hex()
			in := &serializer.ActivityInput{
				User:         serializer.Some(missing),
				ActivityType: serializer.Some("Running"),
				Duration:     []byte(`"-00:10:00"`),
			}
			fe := fieldErrors(in.Apply(ctx, s.Users, &entity.Activity{}, false))
			Expect(fe["user"]).To(ConsistOf(`Invalid pk "` + missing + `" - object does not exist.`))
			Expect(fe["duration"]).To(ConsistOf("Ensure this value is greater than or equal to 0."))
		})

		Specify("missing duration on create", func() {
			in := &serializer.ActivityInput{User: serializer.Some(alice.ID.Hex()), ActivityType: serializer.Some("Running")}
			fe := fieldErrors(in.Apply(ctx, s.Users, &entity.Activity{}, false))
			Expect(fe).To(HaveKeyWithValue("duration", []string{"This field is required."}))
		})
	})

	Describe("Leaderboard", func() {
		Specify("score is required on create", func() {
			fe := fieldErrors((&serializer.LeaderboardInput{User: serializer.Some(alice.ID.Hex())}).Apply(ctx, s.Users, &entity.Leaderboard{}, false))
			Expect(fe).To(HaveKey("score"))
			Expect(fe).NotTo(HaveKey("user"))
		})
	})

	Describe("Team", func() {
		Specify("members are written as ids and read nested", func() {
			in := &serializer.TeamInput{
				Name:    serializer.Some("Blue Team"),
				Members: serializer.Some([]string{alice.ID.Hex(), alice.ID.Hex()}),
			}
			t := &entity.Team{}
			Expect(in.Apply(ctx, s.Users, t, false)).To(Succeed())
			Expect(t.Members).To(Equal([]primitive.ObjectID{alice.ID}))

			users, err := serializer.LoadMembers(ctx, s.Users, t)
			Expect(err).To(BeNil())
			v := serializer.NewTeamView(t, users)
			Expect(v.Members).To(Equal([]serializer.MemberView{{ID: alice.ID.Hex(), Username: "alice"}}))
		})

		Specify("members default to an empty set", func() {
			t := &entity.Team{}
			Expect((&serializer.TeamInput{Name: serializer.Some("Gold Team")}).Apply(ctx, s.Users, t, false)).To(Succeed())
			Expect(t.Members).NotTo(BeNil())
			Expect(serializer.NewTeamView(t, nil).Members).To(BeEmpty())
		})

		Specify("malformed member ids are rejected", func() {
			in := &serializer.TeamInput{Name: serializer.Some("Gold Team"), Members: serializer.Some([]string{"zzz"})}
			fe := fieldErrors(in.Apply(ctx, s.Users, &entity.Team{}, false))
			Expect(fe["members"]).To(ConsistOf(`Invalid pk "zzz" - object does not exist.`))
		})
	})
})
