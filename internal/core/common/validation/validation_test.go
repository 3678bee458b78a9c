package validation_test

import (
	"testing"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func strPtr(s string) *string { return &s }

func fields(err *internal.AppError) []string {
	var out []string
	for _, fe := range err.FieldErrors() {
		out = append(out, fe.Field)
	}
	return out
}

var _ = Describe("ValidationBuilder", func() {
	It("should pass when every rule holds", func() {
		v := validation.NewValidator()
		v.Field("name", "Pilot").Required().MinLength(1).MaxLength(200)
		v.Field("budget", 1000.0).Min(0, internal.ErrCodeInvalidAmount).Max(validation.MaxBudget, internal.ErrCodeInvalidAmount)
		Expect(v.Validate()).To(BeNil())
	})

	It("should collect failures across fields", func() {
		// Given
		v := validation.NewValidator()
		v.Field("name", "   ").Required()
		v.Field("budget", -1.0).Min(0, internal.ErrCodeInvalidAmount)
		v.Field("url", "ftp://files.example.com").URL()

		// When
		err := v.Validate()

		// Then
		Expect(err).NotTo(BeNil())
		Expect(err.Type).To(Equal(internal.ErrorTypeValidation))
		Expect(fields(err)).To(Equal([]string{"name", "budget", "url"}))
		Expect(err.Error()).To(Equal("name is required"))
	})

	It("should skip absent optionals", func() {
		v := validation.NewValidator()
		v.Field("description", (*string)(nil)).MaxLength(10)
		v.Field("start_date", (*string)(nil)).Date()
		v.Field("budget", (*float64)(nil)).Min(0, internal.ErrCodeInvalidAmount)
		Expect(v.Validate()).To(BeNil())
	})

	It("should report a missing required pointer", func() {
		v := validation.NewValidator()
		v.Field("project_id", (*string)(nil)).Required()
		Expect(fields(v.Validate())).To(ConsistOf("project_id"))
	})

	Describe("Date and NotBefore", func() {
		It("should reject malformed dates", func() {
			v := validation.NewValidator()
			v.Field("due_date", strPtr("15/10/2026")).Date()
			Expect(v.Validate().Error()).To(ContainSubstring("YYYY-MM-DD"))
		})

		It("should reject an end date before the start date", func() {
			start := strPtr("2026-03-10")
			v := validation.NewValidator()
			v.Field("end_date", strPtr("2026-03-01")).Date().NotBefore(start, "start_date")
			err := v.Validate()
			Expect(err).NotTo(BeNil())
			Expect(err.FieldErrors()[0].Code).To(Equal(string(internal.ErrCodeInvalidDateRange)))
		})

		It("should accept equal dates", func() {
			v := validation.NewValidator()
			v.Field("end_date", strPtr("2026-03-10")).NotBefore(strPtr("2026-03-10"), "start_date")
			Expect(v.Validate()).To(BeNil())
		})
	})

	Describe("Positive", func() {
		It("should reject zero", func() {
			v := validation.NewValidator()
			v.Field("amount", 0.0).Positive(internal.ErrCodeInvalidAmount)
			Expect(v.Validate().Error()).To(Equal("amount must be greater than 0"))
		})
	})

	Describe("OneOf", func() {
		It("should list the allowed values", func() {
			v := validation.NewValidator()
			v.Field("role", "owner").OneOf("admin", "member")
			Expect(v.Validate().Error()).To(Equal("role must be one of admin, member"))
		})
	})

	Describe("ValidateEmail", func() {
		It("should accept a plain address", func() {
			Expect(validation.ValidateEmail("alice@example.com")).To(BeNil())
		})

		It("should reject an address without a domain", func() {
			Expect(validation.ValidateEmail("alice@")).NotTo(BeNil())
		})
	})

	Describe("ValidatePassword", func() {
		DescribeTable("password strength",
			func(password string, ok bool) {
				err := validation.ValidatePassword(password)
				if ok {
					Expect(err).To(BeNil())
				} else {
					Expect(err).NotTo(BeNil())
				}
			},
			Entry("too short", "abc123", false),
			Entry("letters only", "abcdefghij", false),
			Entry("digits only", "1234567890", false),
			Entry("letters and digits", "secret123", true),
		)
	})
})
