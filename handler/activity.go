package handler

import (
	"github.com/gofiber/fiber/v2"
	"octofit-backend/entity"
	"octofit-backend/events"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

type activityHandler struct {
	store  *store.Store
	events events.Publisher
}

func (h *activityHandler) List(c *fiber.Ctx) error {
	activities, err := h.store.Activities.Find(c.UserContext(), nil)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res := make([]serializer.ActivityView, 0, len(activities))
	for _, a := range activities {
		res = append(res, serializer.NewActivityView(a))
	}

	return c.JSON(res)
}

func (h *activityHandler) Create(c *fiber.Ctx) error {
	logger := requestLogger(c)

	in := &serializer.ActivityInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	a := &entity.Activity{}
	if err := in.Apply(c.UserContext(), h.store.Users, a, false); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Activities.Insert(c.UserContext(), a); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, ActivitiesPath, events.ActionCreate, a.ID)

	return c.Status(fiber.StatusCreated).JSON(serializer.NewActivityView(a))
}

func (h *activityHandler) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.store.Activities.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	return c.JSON(serializer.NewActivityView(a))
}

func (h *activityHandler) Update(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.store.Activities.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(logger, err)
	}

	in := &serializer.ActivityInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}
	if err := in.Apply(c.UserContext(), h.store.Users, a, isPartial(c)); err != nil {
		return storeError(logger, err)
	}

	if err := h.store.Activities.Replace(c.UserContext(), id, a); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, ActivitiesPath, events.ActionUpdate, id)

	return c.JSON(serializer.NewActivityView(a))
}

func (h *activityHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.Activities.Delete(c.UserContext(), id); err != nil {
		return storeError(requestLogger(c), err)
	}
	publish(c, h.events, ActivitiesPath, events.ActionDelete, id)

	return c.SendStatus(fiber.StatusNoContent)
}

func NewActivityHandler(s *store.Store, p events.Publisher) *activityHandler {
	return &activityHandler{
		store:  s,
		events: p,
	}
}
