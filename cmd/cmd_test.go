package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/sandbox"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag back to its default so commands can be run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func setenv(key, value string) {
	prev, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

var _ = Describe("config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		setenv("APP_ENV", "")
	})

	It("writes the defaults with a readable timeout", func() {
		// Given
		path := filepath.Join(dir, "config.yml")

		// When
		_, err := execute("config", "init", "--path", path)

		// Then
		Expect(err).NotTo(HaveOccurred())
		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring("timeout: 15s"))
		Expect(string(raw)).To(ContainSubstring("login_style: form"))
	})

	It("refuses to overwrite without --force", func() {
		// Given
		path := filepath.Join(dir, "config.yml")
		Expect(os.WriteFile(path, []byte("api: {}\n"), 0o600)).To(Succeed())

		// When
		_, err := execute("config", "init", "--path", path)

		// Then
		Expect(err).To(MatchError(ContainSubstring("already exists")))

		_, err = execute("config", "init", "--path", path, "--force")
		Expect(err).NotTo(HaveOccurred())
	})

	It("reads a written file back and lets the environment override it", func() {
		// Given
		path := filepath.Join(dir, "config.yml")
		_, err := execute("config", "init", "--path", path)
		Expect(err).NotTo(HaveOccurred())
		setenv("PROJECT_CONSOLE_API_BASE_URL", "https://pm.example.com/api/v1")

		// When
		cfg, err := loadConfig(path)

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.API.Timeout).To(Equal(15 * time.Second))
		Expect(cfg.API.BaseURL).To(Equal("https://pm.example.com/api/v1"))
		Expect(cfg.API.LoginStyle).To(Equal(internal.LoginStyleForm))
	})

	It("falls back to defaults when no file exists", func() {
		// Given
		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)

		// When
		cfg, err := loadConfig("")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.API.BaseURL).To(Equal(internal.DefaultConfig().API.BaseURL))
	})
})

var _ = Describe("optTime", func() {
	newCmd := func(value string) *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("at", "", "")
		if value != "" {
			Expect(c.Flags().Set("at", value)).To(Succeed())
		}
		return c
	}

	It("is nil when the flag was not given", func() {
		t, err := optTime(newCmd(""), "at")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(BeNil())
	})

	It("accepts a date and a timestamp", func() {
		t, err := optTime(newCmd("2024-03-01"), "at")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Format(time.DateOnly)).To(Equal("2024-03-01"))

		t, err = optTime(newCmd("2024-03-01T10:00:00Z"), "at")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.UTC().Hour()).To(Equal(10))
	})

	It("rejects anything else", func() {
		_, err := optTime(newCmd("yesterday"), "at")
		Expect(err).To(MatchError(ContainSubstring("--at")))
	})
})

var _ = Describe("console against the sandbox", func() {
	var harness *sandbox.Harness

	BeforeEach(func() {
		var err error
		harness, err = sandbox.NewHarness(logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(harness.Close)

		dir := GinkgoT().TempDir()
		setenv("APP_ENV", "")
		setenv("PROJECT_CONSOLE_API_BASE_URL", harness.HTTP.URL+sandbox.APIPrefix)
		setenv("PROJECT_CONSOLE_SESSION_PATH", filepath.Join(dir, "session.db"))
		setenv("PROJECT_CONSOLE_OBSERVABILITY_LOGGING_LEVEL", "error")
		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)
	})

	login := func(email, password string) {
		out, err := execute("login", "--email", email, "--password", password)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Logged in as"))
	}

	It("keeps the session between invocations until logout", func() {
		// Given
		login(sandbox.AdminEmail, sandbox.AdminPassword)

		// When
		out, err := execute("whoami")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(sandbox.AdminEmail))

		_, err = execute("logout")
		Expect(err).NotTo(HaveOccurred())
		_, err = execute("whoami")
		Expect(err).To(MatchError("not logged in"))
	})

	It("reports the server message for bad credentials", func() {
		_, err := execute("login", "--email", sandbox.AdminEmail, "--password", "nope")
		Expect(err).To(MatchError("Invalid credentials"))
	})

	It("lists projects as JSON and reads the budget of one", func() {
		// Given
		login(sandbox.AdminEmail, sandbox.AdminPassword)

		// When
		out, err := execute("projects", "list", "--json")

		// Then
		Expect(err).NotTo(HaveOccurred())
		var projects []project.Project
		Expect(json.Unmarshal([]byte(out), &projects)).To(Succeed())
		Expect(projects).To(HaveLen(1))
		Expect(projects[0].Name).To(Equal("Website Redesign"))

		out, err = execute("expenses", "budget", projects[0].ID, "--json")
		Expect(err).NotTo(HaveOccurred())
		var summary expense.BudgetSummary
		Expect(json.Unmarshal([]byte(out), &summary)).To(Succeed())
		Expect(summary.Spent).To(Equal(250.0))
		Expect(summary.Remaining).To(Equal(4750.0))
	})

	It("creates a project and records an expense against it", func() {
		// Given
		login(sandbox.AdminEmail, sandbox.AdminPassword)
		out, err := execute("projects", "create", "--name", "Pilot", "--budget", "1000", "--json")
		Expect(err).NotTo(HaveOccurred())
		var created project.Project
		Expect(json.Unmarshal([]byte(out), &created)).To(Succeed())

		// When
		_, err = execute("expenses", "add", created.ID, "--amount", "200", "--description", "Licences")

		// Then
		Expect(err).NotTo(HaveOccurred())
		out, err = execute("expenses", "list", created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Licences"))
		Expect(out).To(ContainSubstring("200.00"))
	})

	It("rejects invalid input before calling the server", func() {
		// Given
		login(sandbox.AdminEmail, sandbox.AdminPassword)
		harness.ResetCalls()

		// When
		_, err := execute("projects", "create", "--name", "")

		// Then
		Expect(err).To(MatchError(ContainSubstring("name is required")))
		Expect(harness.CallsTo("POST", "/projects")).To(BeEmpty())
	})

	It("keeps members away from the audit trail", func() {
		// Given
		login(sandbox.MemberEmail, sandbox.MemberPassword)

		// When
		_, err := execute("audit", "list")

		// Then
		Expect(err).To(HaveOccurred())
	})

	It("pages through the audit trail for admins", func() {
		// Given
		login(sandbox.AdminEmail, sandbox.AdminPassword)

		// When
		out, err := execute("audit", "list", "--action", "login")

		// Then
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("login"))
		Expect(out).To(ContainSubstring("page 1 of 1"))
	})
})
