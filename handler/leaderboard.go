package handler

import (
	"github.com/gofiber/fiber/v2"
	"octofit-backend/entity"
	"octofit-backend/events"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

type leaderboardHandler struct {
	store  *store.Store
	events events.Publisher
}

func (h *leaderboardHandler) List(c *fiber.Ctx) error {
	entries, err := h.store.Leaderboard.Find(c.UserContext(), nil)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res := make([]serializer.LeaderboardView, 0, len(entries))
	for _, l := range entries {
		res = append(res, serializer.NewLeaderboardView(l))
	}

	return c.JSON(res)
}

func (h *leaderboardHandler) Create(c *fiber.Ctx) error {
	logger := requestLogger(c)

	in := &serializer.LeaderboardInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	l := &entity.Leaderboard{}
	if err := in.Apply(c.UserContext(), h.store.Users, l, false); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Leaderboard.Insert(c.UserContext(), l); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, LeaderboardPath, events.ActionCreate, l.ID)

	return c.Status(fiber.StatusCreated).JSON(serializer.NewLeaderboardView(l))
}

func (h *leaderboardHandler) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	l, err := h.store.Leaderboard.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	return c.JSON(serializer.NewLeaderboardView(l))
}

func (h *leaderboardHandler) Update(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	l, err := h.store.Leaderboard.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(logger, err)
	}

	in := &serializer.LeaderboardInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}
	if err := in.Apply(c.UserContext(), h.store.Users, l, isPartial(c)); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Leaderboard.Replace(c.UserContext(), id, l); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, LeaderboardPath, events.ActionUpdate, id)

	return c.JSON(serializer.NewLeaderboardView(l))
}

func (h *leaderboardHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.Leaderboard.Delete(c.UserContext(), id); err != nil {
		return storeError(requestLogger(c), err)
	}
	publish(c, h.events, LeaderboardPath, events.ActionDelete, id)

	return c.SendStatus(fiber.StatusNoContent)
}

func NewLeaderboardHandler(s *store.Store, p events.Publisher) *leaderboardHandler {
	return &leaderboardHandler{
		store:  s,
		events: p,
	}
}
