package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"octofit-backend/errs"
	"octofit-backend/events"
	"octofit-backend/log"
)

const RequestIDKey = "requestid"

// Public collection names, as routed under /api/.
const (
	UsersPath       = "users"
	TeamsPath       = "teams"
	ActivitiesPath  = "activities"
	LeaderboardPath = "leaderboard"
	WorkoutsPath    = "workouts"
)

var Collections = []string{UsersPath, TeamsPath, ActivitiesPath, LeaderboardPath, WorkoutsPath}

func requestLogger(c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return log.Logger.With(zap.String("requestID", id))
	}

	return log.Logger
}

func parseID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}

	return id, nil
}

func isPartial(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodPatch
}

// storeError passes not-found and validation errors through and turns
// everything else into errs.ErrDatabase after logging it.
func storeError(logger *zap.Logger, err error) error {
	var fe errs.FieldErrors
	switch {
	case errors.Is(err, errs.ErrNotFound), errors.As(err, &fe), errors.Is(err, errs.ErrCryptographic):
		return err
	}

	logger.Error("database error", zap.Error(err))
	return errs.ErrDatabase
}

// publish reports a committed change. A broker failure never fails the request.
func publish(c *fiber.Ctx, p events.Publisher, collection, action string, id primitive.ObjectID) {
	err := p.Publish(c.UserContext(), &events.ChangeEvent{
		Collection: collection,
		Action:     action,
		ID:         id.Hex(),
		At:         time.Now().UTC(),
	})
	if err != nil {
		requestLogger(c).Warn("queue error", zap.Error(err), zap.String("collection", collection), zap.String("id", id.Hex()))
	}
}
