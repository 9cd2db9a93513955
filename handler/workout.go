package handler

import (
	"github.com/gofiber/fiber/v2"
	"octofit-backend/entity"
	"octofit-backend/events"
	"octofit-backend/serializer"
	"octofit-backend/store"
)

type workoutHandler struct {
	store  *store.Store
	events events.Publisher
}

func (h *workoutHandler) List(c *fiber.Ctx) error {
	workouts, err := h.store.Workouts.Find(c.UserContext(), nil)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	res := make([]serializer.WorkoutView, 0, len(workouts))
	for _, w := range workouts {
		res = append(res, serializer.NewWorkoutView(w))
	}

	return c.JSON(res)
}

func (h *workoutHandler) Create(c *fiber.Ctx) error {
	in := &serializer.WorkoutInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}

	w := &entity.Workout{}
	if err := in.Apply(w, false); err != nil {
		return err
	}

	if err := h.store.Workouts.Insert(c.UserContext(), w); err != nil {
		return storeError(requestLogger(c), err)
	}
	publish(c, h.events, WorkoutsPath, events.ActionCreate, w.ID)

	return c.Status(fiber.StatusCreated).JSON(serializer.NewWorkoutView(w))
}

func (h *workoutHandler) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	w, err := h.store.Workouts.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(requestLogger(c), err)
	}

	return c.JSON(serializer.NewWorkoutView(w))
}

func (h *workoutHandler) Update(c *fiber.Ctx) error {
	logger := requestLogger(c)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	w, err := h.store.Workouts.FindByID(c.UserContext(), id)
	if err != nil {
		return storeError(logger, err)
	}

	in := &serializer.WorkoutInput{}
	if err := serializer.Decode(c.Body(), in); err != nil {
		return err
	}
	if err := in.Apply(w, isPartial(c)); err != nil {
		return err
	}

	if err := h.store.Workouts.Replace(c.UserContext(), id, w); err != nil {
		return storeError(logger, err)
	}
	publish(c, h.events, WorkoutsPath, events.ActionUpdate, id)

	return c.JSON(serializer.NewWorkoutView(w))
}

func (h *workoutHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.Workouts.Delete(c.UserContext(), id); err != nil {
		return storeError(requestLogger(c), err)
	}
	publish(c, h.events, WorkoutsPath, events.ActionDelete, id)

	return c.SendStatus(fiber.StatusNoContent)
}

func NewWorkoutHandler(s *store.Store, p events.Publisher) *workoutHandler {
	return &workoutHandler{
		store:  s,
		events: p,
	}
}
