package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/events"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

type teamHandler struct {
	store  *store.Store
	events events.Publisher
}

func (h *teamHandler) view(c *fiber.Ctx, t *entity.Team) (serializer.TeamView, error) {
	users, err := serializer.LoadMembers(c.UserContext(), h.store.Users, t)
	if err != nil {
		return serializer.TeamView{}, storeError(requestLogger(c), err)
	}

	return serializer.NewTeamView(t, users), nil
}

func (h *teamHandler) List(c *fiber.Ctx) error {
	logger := requestLogger(c)

	teams, err := h.store.Teams.Find(c.UserContext(), nil)
	if err != nil {
		return storeError(logger, err)
	}

	users, err := serializer.LoadMembers(c.UserContext(), h.store.Users, teams...)
	if err != nil {
		return storeError(logger, err)
	}

	res := make([]serializer.TeamView, 0, len(teams))
	for _, t := range teams {
		res = append(res, serializer.NewTeamView(t, users))
	}

	return c.JSON(res)
}

func (h *teamHandler) Create(c *fiber.Ctx) error {
	logger := requestLogger(c)

	in := &serializer.TeamInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	t := &entity.Team{}
	if err := in.Apply(c.UserContext(), h.store.Users, t, false); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Teams.Insert(c.UserContext(), t); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, TeamsPath, events.ActionCreate, t.ID)

	res, err := h.view(c, t)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *teamHandler) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	t, err := h.store.Teams.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res, err := h.view(c, t)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (h *teamHandler) Update(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	t, err := h.store.Teams.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(logger, err)
	}

	in := &serializer.TeamInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}
	if err := in.Apply(c.UserContext(), h.store.Users, t, isPartial(c)); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Teams.Replace(c.UserContext(), id, t); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, TeamsPath, events.ActionUpdate, id)

	res, err := h.view(c, t)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (h *teamHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.Teams.Delete(c.UserContext(), id); err != nil {
		return storeError(requestLogger(c), err)
	}
	publish(c, h.events, TeamsPath, events.ActionDelete, id)

	return c.SendStatus(fiber.StatusNoContent)
}

// AddMembers inserts users into the member set; existing members are left alone.
// An event is published only when the set changed.
func (h *teamHandler) AddMembers(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	in := &serializer.MembersInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	// An unknown team is a 404 even when the members are invalid too.
	if _, err := h.store.Teams.FindByID(c.UserContext(), id); err != nil {
		return storeError(logger, err)
	}
	members, err := in.Resolve(c.UserContext(), h.store.Users)
	if err != nil {
		return storeError(logger, err)
	}

	if len(members) > 0 {
		changed, err := h.store.Teams.AddMembers(c.UserContext(), id, members...)
		if err != nil {
			return storeError(logger, err)
		}
		if changed {
			publish(c, h.events, TeamsPath, events.ActionUpdate, id)
		}
	}

	return h.respondTeam(c, id)
}

func (h *teamHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := parseID(c, "userID")
	if err != nil {
		return err
	}

	changed, err := h.store.Teams.RemoveMembers(c.UserContext(), id, user)
	if err != nil {
		return storeError(requestLogger(c), err)
	}
	if changed {
		publish(c, h.events, TeamsPath, events.ActionUpdate, id)
	}

	return h.respondTeam(c, id)
}

func (h *teamHandler) respondTeam(c *fiber.Ctx, id primitive.ObjectID) error {
	t, err := h.store.Teams.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res, err := h.view(c, t)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func NewTeamHandler(s *store.Store, p events.Publisher) *teamHandler {
	return &teamHandler{
		store:  s,
		events: p,
	}
}
