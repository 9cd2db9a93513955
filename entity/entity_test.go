package entity_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
)

var _ = Describe("Team", func() {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	Specify("NewTeam assigns an id and never has nil members", func() {
		t := entity.NewTeam("Blue Team")
		Expect(t.ID.IsZero()).To(BeFalse())
		Expect(t.Members).NotTo(BeNil())
		Expect(t.Members).To(BeEmpty())
	})

	Specify("members are deduplicated keeping first occurrence", func() {
		t := entity.NewTeam("Gold Team", b, a, b, a)
		Expect(t.Members).To(Equal([]primitive.ObjectID{b, a}))
	})
})

var _ = Describe("User password", func() {
	Specify("is hashed and verifiable", func() {
		u := &entity.User{Username: "eaglestar"}
		Expect(u.SetPassword("eaglestarpassword")).To(Succeed())
		Expect(u.Password).NotTo(Equal("eaglestarpassword"))
		Expect(u.CheckPassword("eaglestarpassword")).To(BeTrue())
		Expect(u.CheckPassword("wrong")).To(BeFalse())
	})
})
