package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func addService(t *testing.T, db database.Database, owner *models.User, slug string, faqs ...models.Faq) *models.Service {
	t.Helper()
	svc := &models.Service{Name: slug, Slug: slug, Description: "d", UserID: owner.ID, Faqs: faqs}
	require.NoError(t, db.ServiceRepo().Add(context.Background(), svc))
	return svc
}

func TestSlugPrefixCounting(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)

	addService(t, db, owner, "web-design")
	addService(t, db, owner, "web-design-2")
	other := addService(t, db, owner, "branding")

	n, err := db.ServiceRepo().CountSlugPrefix(ctx, "web-design")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = db.ServiceRepo().CountSlugPrefix(ctx, "seo")
	require.NoError(t, err)
	assert.Zero(t, n)

	// scopes are per entity type
	n, err = db.ProjectRepo().CountSlugPrefix(ctx, "web-design")
	require.NoError(t, err)
	assert.Zero(t, n)

	taken, err := db.ServiceRepo().SlugTaken(ctx, "branding", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = db.ServiceRepo().SlugTaken(ctx, "branding", other.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a row never collides with itself")
}

func TestDuplicateSlugIsRejected(t *testing.T) {
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)
	addService(t, db, owner, "web-design")

	err := db.ServiceRepo().Add(context.Background(), &models.Service{Name: "x", Slug: "web-design", Description: "d", UserID: owner.ID})
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
}

func TestProjectDeleteRemovesFiles(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)

	project := &models.Project{
		Name: "Site", Slug: "site", Description: "d", UserID: owner.ID,
		Files: []models.ProjectFile{{Path: "projects/a.png"}, {Path: "projects/b.png"}},
	}
	require.NoError(t, db.ProjectRepo().Add(ctx, project))

	files, err := db.ProjectFileRepo().FindByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)

	require.NoError(t, db.ProjectRepo().Delete(ctx, project.ID))

	files, err = db.ProjectFileRepo().FindByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, files)

	err = db.ProjectRepo().Delete(ctx, project.ID)
	assert.True(t, database.IsNotFound(err))
}

func TestChildRowsFollowPosition(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)

	// one batch insert stamps every row with the same created_at
	svc := addService(t, db, owner, "ordered",
		models.Faq{Question: "third", Answer: "a", Position: 2},
		models.Faq{Question: "first", Answer: "a", Position: 0},
		models.Faq{Question: "second", Answer: "a", Position: 1},
	)
	loaded, err := db.ServiceRepo().FindByID(ctx, svc.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Faqs, 3)
	assert.Equal(t, "first", loaded.Faqs[0].Question)
	assert.Equal(t, "second", loaded.Faqs[1].Question)
	assert.Equal(t, "third", loaded.Faqs[2].Question)

	project := &models.Project{
		Name: "Site", Slug: "site", Description: "d", UserID: owner.ID,
		Files: []models.ProjectFile{{Path: "projects/b.png", Position: 1}, {Path: "projects/a.png", Position: 0}},
	}
	require.NoError(t, db.ProjectRepo().Add(ctx, project))

	next, err := db.ProjectFileRepo().NextPosition(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	next, err = db.ProjectFileRepo().NextPosition(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, next)

	files, err := db.ProjectFileRepo().FindByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "projects/a.png", files[0].Path)

	reloaded, err := db.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Files, 2)
	assert.Equal(t, "projects/a.png", reloaded.Files[0].Path)
	assert.Equal(t, "projects/b.png", reloaded.Files[1].Path)
}

func TestPrimaryBypassesReplicas(t *testing.T) {
	ctx := context.Background()
	raw := dbtest.Open(t)
	dbtest.AddLaggingReplica(t, raw)
	db := database.New(raw)
	owner := dbtest.SeedUser(t, db)
	svc := addService(t, db, owner, "fresh")

	_, err := db.ServiceRepo().FindByID(ctx, svc.ID)
	assert.True(t, database.IsNotFound(err), "plain reads go to the replica")

	found, err := db.Primary().ServiceRepo().FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", found.Slug)

	n, err := db.Primary().ServiceRepo().CountSlugPrefix(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFaqOwnership(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)

	a := addService(t, db, owner, "a", models.Faq{Question: "q1", Answer: "a1"})
	b := addService(t, db, owner, "b", models.Faq{Question: "q2", Answer: "a2"})

	bFaqs, err := db.FaqRepo().FindByService(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, bFaqs, 1)

	// deleting through the wrong parent is a no-op
	require.NoError(t, db.FaqRepo().DeleteByIDs(ctx, a.ID, []uuid.UUID{bFaqs[0].ID}))
	found, err := db.FaqRepo().FindByIDs(ctx, []uuid.UUID{bFaqs[0].ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ServiceID)

	bFaqs[0].Question = "changed"
	require.NoError(t, db.FaqRepo().UpdateContent(ctx, b.ID, bFaqs[0]))
	reloaded, err := db.ServiceRepo().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", reloaded.Faqs[0].Question)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	owner := dbtest.SeedUser(t, db)

	boom := errors.New("boom")
	err := db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.HeroSliderRepo().Add(ctx, &models.HeroSlider{Title: "t", Slug: "t", Description: "d", UserID: owner.ID}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	slides, err := db.HeroSliderRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, slides)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)

	user, err := db.UserRepo().EnsureAdmin(ctx, "Admin", "Admin@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))

	again, err := db.UserRepo().EnsureAdmin(ctx, "Admin", "admin@example.com", "other")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, user.PasswordHash, again.PasswordHash)

	_, err = db.UserRepo().FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContactPaging(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.ContactRepo().Add(ctx, &models.Contact{FirstName: "A", LastName: "B", Email: "a@b.co", Content: "hi"}))
	}

	page, total, err := db.ContactRepo().FindPage(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	found, err := db.ContactRepo().FindByID(ctx, page[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", found.Email)
}
