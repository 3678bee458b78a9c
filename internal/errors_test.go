package internal_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/project-console/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("NewFromStatus", func() {
		DescribeTable("should classify API statuses",
			func(status int, expected internal.ErrorType) {
				err := internal.NewFromStatus(status, "boom")
				Expect(err.Type).To(Equal(expected))
				Expect(err.StatusCode).To(Equal(status))
				Expect(err.Message).To(Equal("boom"))
			},
			Entry("400", http.StatusBadRequest, internal.ErrorTypeValidation),
			Entry("401", http.StatusUnauthorized, internal.ErrorTypeUnauthorized),
			Entry("403", http.StatusForbidden, internal.ErrorTypeForbidden),
			Entry("404", http.StatusNotFound, internal.ErrorTypeNotFound),
			Entry("409", http.StatusConflict, internal.ErrorTypeConflict),
			Entry("422", http.StatusUnprocessableEntity, internal.ErrorTypeValidation),
			Entry("500", http.StatusInternalServerError, internal.ErrorTypeExternal),
		)
	})

	Describe("ErrorMessage", func() {
		It("should prefer the server message", func() {
			err := internal.NewFromStatus(http.StatusBadRequest, "Project name already exists")
			Expect(internal.ErrorMessage(err, "Failed to create project")).To(Equal("Project name already exists"))
		})

		It("should fall back when the server gave no message", func() {
			err := internal.NewFromStatus(http.StatusInternalServerError, "")
			Expect(internal.ErrorMessage(err, "Failed to load projects")).To(Equal("Failed to load projects"))
		})

		It("should always fall back for network failures", func() {
			err := internal.NewNetworkError(errors.New("connection refused"))
			Expect(internal.ErrorMessage(err, "Failed to load tasks")).To(Equal("Failed to load tasks"))
		})

		It("should fall back for foreign errors", func() {
			Expect(internal.ErrorMessage(errors.New("raw"), "fallback")).To(Equal("fallback"))
		})

		It("should unwrap wrapped app errors", func() {
			wrapped := fmt.Errorf("list: %w", internal.NewFromStatus(http.StatusForbidden, "Not allowed"))
			Expect(internal.ErrorMessage(wrapped, "fallback")).To(Equal("Not allowed"))
			Expect(internal.IsType(wrapped, internal.ErrorTypeForbidden)).To(BeTrue())
		})

		It("should join multiple validation messages", func() {
			err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
				WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
					{Field: "name", Message: "name is required"},
					{Field: "budget", Message: "budget must be at least 0"},
				}})
			Expect(internal.ErrorMessage(err, "fallback")).To(Equal("name is required; budget must be at least 0"))
			Expect(err.FieldErrors()).To(HaveLen(2))
		})

		It("should return empty for nil", func() {
			Expect(internal.ErrorMessage(nil, "fallback")).To(BeEmpty())
		})
	})
})
