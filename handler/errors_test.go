package handler_test

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"octofit-backend/errs"
	"octofit-backend/handler"
)

var _ = Describe("ErrorHandler", func() {
	respond := func(err error) (int, string) {
		app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
		app.Get("/", func(*fiber.Ctx) error { return err })

		res, e := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		Expect(e).To(BeNil())
		raw, e := io.ReadAll(res.Body)
		Expect(e).To(BeNil())

		return res.StatusCode, string(raw)
	}

	table.DescribeTable("status and body",
		func(err error, status int, body string) {
			gotStatus, gotBody := respond(err)
			Expect(gotStatus).To(Equal(status))
			Expect(gotBody).To(MatchJSON(body))
		},
		table.Entry("field errors", errs.FieldErrors{"name": {"This field is required."}},
			fiber.StatusBadRequest, `{"name":["This field is required."]}`),
		table.Entry("malformed body", fmt.Errorf("%w: unexpected EOF", errs.ErrInvalidBody),
			fiber.StatusBadRequest, `{"detail":"E0004: malformed request body: unexpected EOF"}`),
		table.Entry("not found", errs.ErrNotFound,
			fiber.StatusNotFound, `{"detail":"E0002: not found"}`),
		table.Entry("invalid id", errs.ErrInvalidID,
			fiber.StatusNotFound, `{"detail":"E0003: invalid ID"}`),
		table.Entry("database", errs.ErrDatabase,
			fiber.StatusInternalServerError, `{"detail":"E0001: database error"}`),
		table.Entry("fiber error", fiber.ErrMethodNotAllowed,
			fiber.StatusMethodNotAllowed, `{"detail":"Method Not Allowed"}`),
		table.Entry("anything else", errors.New("boom"),
			fiber.StatusInternalServerError, `{"detail":"E0008: internal error"}`),
	)
})
