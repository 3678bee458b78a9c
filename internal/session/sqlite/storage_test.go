package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/frahmantamala/project-console/internal/session"
	"github.com/frahmantamala/project-console/internal/session/sqlite"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session SQLite Suite")
}

var _ = Describe("Storage", func() {
	var (
		ctx     context.Context
		path    string
		storage *sqlite.Storage
	)

	BeforeEach(func() {
		ctx = context.Background()
		path = filepath.Join(GinkgoT().TempDir(), "nested", "session.db")

		var err error
		storage, err = sqlite.Open(ctx, path, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(storage.Close)
	})

	It("reports missing keys", func() {
		_, ok, err := storage.Get(ctx, "access_token")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("upserts and removes values", func() {
		// Given
		Expect(storage.SetMany(ctx, map[string]string{"a": "1", "b": "2"})).To(Succeed())

		// When
		Expect(storage.SetMany(ctx, map[string]string{"a": "3"})).To(Succeed())

		// Then
		v, ok, err := storage.Get(ctx, "a")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("3"))

		Expect(storage.Remove(ctx, "a", "b")).To(Succeed())
		_, ok, _ = storage.Get(ctx, "b")
		Expect(ok).To(BeFalse())
	})

	It("migrates an existing file without error", func() {
		db, err := sqlite.OpenDB(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlite.Migrate(ctx, db)).To(Succeed())
	})

	It("keeps a session across store instances", func() {
		// Given
		first := session.NewStore(storage, nil, logger.Discard())
		Expect(first.Init(ctx)).To(Succeed())
		Expect(first.SetAuth(ctx, user.User{ID: "u1", Email: "a@b.com", Role: user.RoleMember}, "opaque")).To(Succeed())

		// When
		reopened, err := sqlite.Open(ctx, path, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(reopened.Close)
		second := session.NewStore(reopened, nil, logger.Discard())
		Expect(second.Init(ctx)).To(Succeed())

		// Then
		snap := second.Snapshot()
		Expect(snap.IsAuthenticated).To(BeTrue())
		Expect(snap.User.Email).To(Equal("a@b.com"))

		Expect(second.ClearAuth(ctx)).To(Succeed())
		_, ok, _ := storage.Get(ctx, session.TokenKey)
		Expect(ok).To(BeFalse())
	})
})
