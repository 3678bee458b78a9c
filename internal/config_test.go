package internal_test

import (
	"os"
	"time"

	"github.com/frahmantamala/project-console/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg *internal.Config

	BeforeEach(func() {
		cfg = internal.DefaultConfig()
	})

	It("should accept the defaults", func() {
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.API.LoginStyle).To(Equal(internal.LoginStyleForm))
	})

	Context("when the base url is relative", func() {
		It("should reject it", func() {
			// Given
			cfg.API.BaseURL = "/api/v1"

			// When
			err := cfg.Validate()

			// Then
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("api config"))
		})
	})

	Context("when several sections are invalid", func() {
		It("should report all of them", func() {
			cfg.API.LoginStyle = "xml"
			cfg.Session.Path = ""
			cfg.Observability.Tracing.Enabled = true
			cfg.Observability.Tracing.ServiceName = ""

			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("api config"))
			Expect(err.Error()).To(ContainSubstring("session config"))
			Expect(err.Error()).To(ContainSubstring("observability config"))
		})
	})

	Describe("LoadConfigFromEnv", func() {
		AfterEach(func() {
			os.Unsetenv("API_BASE_URL")
			os.Unsetenv("API_TIMEOUT_SECONDS")
			os.Unsetenv("API_LOGIN_STYLE")
			os.Unsetenv("TRACING_ENABLED")
		})

		It("should read overrides from the environment", func() {
			os.Setenv("API_BASE_URL", "https://pm.example.com/api/v1")
			os.Setenv("API_TIMEOUT_SECONDS", "3")
			os.Setenv("API_LOGIN_STYLE", "json")
			os.Setenv("TRACING_ENABLED", "true")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.API.BaseURL).To(Equal("https://pm.example.com/api/v1"))
			Expect(cfg.API.Timeout).To(Equal(3 * time.Second))
			Expect(cfg.API.LoginStyle).To(Equal(internal.LoginStyleJSON))
			Expect(cfg.Observability.Tracing.Enabled).To(BeTrue())
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})
