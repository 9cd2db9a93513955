package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"octofit-backend/entity"
	"octofit-backend/events"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

type userHandler struct {
	store  *store.Store
	events events.Publisher
}

func (h *userHandler) List(c *fiber.Ctx) error {
	users, err := h.store.Users.Find(c.UserContext(), nil)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res := make([]serializer.UserView, 0, len(users))
	for _, u := range users {
		res = append(res, serializer.NewUserView(u))
	}

	return c.JSON(res)
}

func (h *userHandler) Create(c *fiber.Ctx) error {
	logger := requestLogger(c)

	in := &serializer.UserInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	u := &entity.User{}
	if err := in.Apply(u, false); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Users.Insert(c.UserContext(), u); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, UsersPath, events.ActionCreate, u.ID)

	return c.Status(fiber.StatusCreated).JSON(serializer.NewUserView(u))
}

func (h *userHandler) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	u, err := h.store.Users.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	return c.JSON(serializer.NewUserView(u))
}

func (h *userHandler) Update(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	u, err := h.store.Users.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(logger, err)
	}

	in := &serializer.UserInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}
	if err := in.Apply(u, isPartial(c)); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Users.Replace(c.UserContext(), id, u); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, UsersPath, events.ActionUpdate, id)

	return c.JSON(serializer.NewUserView(u))
}

// Delete removes the user and cascades to its activities, leaderboard entries
// and team memberships. The steps are not transactional.
func (h *userHandler) Delete(c *fiber.Ctx) error {
	logger := requestLogger(c)
	ctx := c.UserContext()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.Users.Delete(ctx, id); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, UsersPath, events.ActionDelete, id)

	activities, err := h.store.Activities.DeleteMany(ctx, store.ByUser(id))
	if err != nil {
		return storeError(logger, err)
	}
	entries, err := h.store.Leaderboard.DeleteMany(ctx, store.ByUser(id))
	if err != nil {
		return storeError(logger, err)
	}
	if err := h.store.Teams.PullMember(ctx, id); err != nil {
		return storeError(logger, err)
	}
	logger.Debug("user deleted",
		zap.String("id", id.Hex()),
		zap.Int64("activities", activities),
		zap.Int64("leaderboard", entries),
	)

	return c.SendStatus(fiber.StatusNoContent)
}

func NewUserHandler(s *store.Store, p events.Publisher) *userHandler {
	return &userHandler{
		store:  s,
		events: p,
	}
}
