// Package serializer converts entities to and from their JSON wire form.
//
// Views are what the API returns; Inputs are what it accepts. Input fields are
// wrapped in Field so a partial update can tell an absent field from a null one.
package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"octofit-backend/entity"
	"octofit-backend/errs"
	"octofit-backend/store"
)

const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgNull          = "This field may not be null."
	msgEmail         = "Enter a valid email address."
	msgIncorrectType = "Incorrect type."
	msgMinZero       = "Ensure this value is greater than or equal to 0."
	msgPKMissing     = "Invalid pk \"%s\" - object does not exist."
)

// Users is the lookup used to resolve user references.
type Users interface {
	Find(ctx context.Context, filter bson.M) ([]*entity.User, error)
}

// Decode unmarshals a JSON body into v. Type mismatches become field errors,
// anything else unparsable is errs.ErrInvalidBody.
func Decode(body []byte, v interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		return errs.FieldErrors{field: {msgIncorrectType}}
	}

	return fmt.Errorf("%w: %s", errs.ErrInvalidBody, err.Error())
}

func checkString(fe errs.FieldErrors, field string, v Field[string], partial bool) {
	if !v.ok(fe, field, partial) {
		return
	}

	if strings.TrimSpace(v.Value) == "" {
		fe.Add(field, msgBlank)
	}
}

func checkEmail(fe errs.FieldErrors, field string, v Field[string], partial bool) {
	checkString(fe, field, v, partial)
	if !v.Set || len(fe[field]) > 0 {
		return
	}

	addr, err := mail.ParseAddress(v.Value)
	if err != nil || addr.Address != v.Value {
		fe.Add(field, msgEmail)
	}
}

// resolveUsers parses hex ids and confirms each names an existing user.
// Unknown or malformed ids are reported under field.
func resolveUsers(ctx context.Context, users Users, fe errs.FieldErrors, field string, raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			fe.Add(field, fmt.Sprintf(msgPKMissing, r))
			continue
		}
		ids = append(ids, id)
	}
	ids = entity.UniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}

	found, err := users.Find(ctx, store.ByIDs(ids))
	if err != nil {
		return nil, err
	}

	exists := make(map[primitive.ObjectID]struct{}, len(found))
	for _, u := range found {
		exists[u.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := exists[id]; !ok {
			fe.Add(field, fmt.Sprintf(msgPKMissing, id.Hex()))
		}
	}

	return ids, nil
}

// resolveUser handles a single required user reference.
func resolveUser(ctx context.Context, users Users, fe errs.FieldErrors, field string, v Field[string], partial bool) (primitive.ObjectID, error) {
	if !v.ok(fe, field, partial) {
		return primitive.NilObjectID, nil
	}

	ids, err := resolveUsers(ctx, users, fe, field, []string{v.Value})
	if err != nil || len(ids) == 0 {
		return primitive.NilObjectID, err
	}

	return ids[0], nil
}
