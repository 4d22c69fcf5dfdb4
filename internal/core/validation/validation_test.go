package validation_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/validation"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

var _ = Describe("Name", func() {
	It("should accept names within the length bounds", func() {
		Expect(validation.Name("Bob")).To(BeNil())
		Expect(validation.Name("John Doe")).To(BeNil())
		Expect(validation.Name(strings.Repeat("a", 15))).To(BeNil())
	})

	It("should reject a blank name as a missing field", func() {
		err := validation.Name("   ")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeMissingField))
	})

	It("should reject names outside the length bounds", func() {
		Expect(validation.Name("Jo")).ToNot(BeNil())
		Expect(validation.Name(strings.Repeat("a", 16))).ToNot(BeNil())
	})

	It("should count characters, not bytes", func() {
		Expect(validation.Name("Jöe")).To(BeNil())
		Expect(validation.Name(strings.Repeat("é", 15))).To(BeNil())
		Expect(validation.Name(strings.Repeat("é", 16))).ToNot(BeNil())
	})
})

var _ = Describe("Email", func() {
	It("should accept an address on the allowed domain", func() {
		Expect(validation.Email("john.doe@watchguard.com", "watchguard.com")).To(BeNil())
	})

	It("should accept an uppercase local part", func() {
		Expect(validation.Email("John.Doe@watchguard.com", "watchguard.com")).To(BeNil())
	})

	It("should reject an uppercased domain", func() {
		err := validation.Email("john@WATCHGUARD.COM", "watchguard.com")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeInvalidEmail))
	})

	It("should reject an address on another domain", func() {
		err := validation.Email("john@gmail.com", "watchguard.com")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeInvalidEmail))
	})

	It("should reject an address without a local part", func() {
		Expect(validation.Email("@watchguard.com", "watchguard.com")).ToNot(BeNil())
	})

	It("should reject an address with illegal local-part characters", func() {
		Expect(validation.Email("john doe@watchguard.com", "watchguard.com")).ToNot(BeNil())
	})

	It("should reject a blank address as a missing field", func() {
		err := validation.Email("", "watchguard.com")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeMissingField))
	})
})

var _ = Describe("Password", func() {
	It("should accept a password meeting every rule", func() {
		Expect(validation.Password("Strongpass@1")).To(BeNil())
	})

	It("should accept a password exactly at the length bounds", func() {
		Expect(validation.Password("Aa@x5678")).To(BeNil())
		Expect(validation.Password("Aa@x5678abcdefgh")).To(BeNil())
	})

	It("should reject a password one character too short", func() {
		err := validation.Password("Aa@x567")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeInvalidPassword))
	})

	It("should reject a password one character too long", func() {
		Expect(validation.Password("Aa@x5678abcdefghi")).ToNot(BeNil())
	})

	It("should reject a password without an uppercase letter", func() {
		Expect(validation.Password("weakpass@1")).ToNot(BeNil())
	})

	It("should reject a password without a lowercase letter", func() {
		Expect(validation.Password("WEAKPASS@1")).ToNot(BeNil())
	})

	It("should reject a password without a special character", func() {
		Expect(validation.Password("Strongpass1")).ToNot(BeNil())
	})
})

var _ = Describe("Department", func() {
	It("should accept each department in the enumeration", func() {
		for _, d := range validation.Departments {
			Expect(validation.Department(d)).To(BeNil())
		}
	})

	It("should reject an unknown department", func() {
		err := validation.Department("SPACE PLATFORM")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeValidation))
	})

	It("should reject a lowercased department", func() {
		Expect(validation.Department("cloud platform")).ToNot(BeNil())
	})
})

var _ = Describe("UUID", func() {
	It("should accept a canonical UUID", func() {
		Expect(validation.UUID("user_id", "7b1c2d3e-4f50-4a6b-8c7d-9e0f1a2b3c4d")).To(BeNil())
	})

	It("should reject a blank id as a missing field", func() {
		err := validation.UUID("user_id", "")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeMissingField))
	})

	It("should reject a malformed id", func() {
		err := validation.UUID("user_id", "not-a-uuid")
		Expect(err).ToNot(BeNil())
		Expect(err.Code).To(Equal(internal.CodeInvalidFormat))
	})

	It("should reject a non-canonical form that parses but does not round-trip", func() {
		Expect(validation.UUID("user_id", "7b1c2d3e4f504a6b8c7d9e0f1a2b3c4d")).ToNot(BeNil())
	})
})
