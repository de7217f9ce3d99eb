package content_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Contact
	err  error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, c *models.Contact) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *c)
	return n.err
}

func TestInboxSubmit(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	notifier := &recordingNotifier{}
	inbox := content.NewInbox(db, notifier)

	contact, err := inbox.Submit(ctx, content.ContactInput{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     "Ada@Example.COM",
		Content:   "Hello there",
	}, content.ContactMeta{IP: "203.0.113.9", Locale: "ar"})
	require.NoError(t, err)
	inbox.Wait()

	assert.Equal(t, "ada@example.com", contact.Email)
	assert.Equal(t, "Ada", contact.FirstName)
	assert.Nil(t, contact.Subject)

	stored, err := inbox.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", stored.Meta["ip"])
	assert.Equal(t, "ar", stored.Meta["locale"])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, contact.ID, notifier.sent[0].ID)
}

func TestInboxSubmitKeepsMessageWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	inbox := content.NewInbox(db, &recordingNotifier{err: errors.New("smtp down")})

	contact, err := inbox.Submit(ctx, content.ContactInput{FirstName: "A", LastName: "B", Email: "a@b.co", Content: "hi"}, content.ContactMeta{})
	require.NoError(t, err)
	inbox.Wait()

	_, err = inbox.Get(ctx, contact.ID)
	require.NoError(t, err)
}

func TestInboxSubmitValidates(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	notifier := &recordingNotifier{}
	inbox := content.NewInbox(db, notifier)

	_, err := inbox.Submit(ctx, content.ContactInput{Email: "nope"}, content.ContactMeta{})
	v := validationErrors(t, err)
	assert.Equal(t, "The first_name field is required.", v["first_name"])
	assert.Equal(t, "The last_name field is required.", v["last_name"])
	assert.Equal(t, "The email field must be a valid email address.", v["email"])
	assert.Equal(t, "The content field is required.", v["content"])

	inbox.Wait()
	assert.Empty(t, notifier.sent)

	page, err := inbox.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Equal(t, 1, page.LastPage)
}

func TestInboxList(t *testing.T) {
	ctx := context.Background()
	db, _ := dbtest.New(t)
	inbox := content.NewInbox(db, nil)

	for i := 0; i < 5; i++ {
		_, err := inbox.Submit(ctx, content.ContactInput{FirstName: "A", LastName: "B", Email: "a@b.co", Content: "hi"}, content.ContactMeta{})
		require.NoError(t, err)
	}

	page, err := inbox.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.LastPage)

	page, err = inbox.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, page.PerPage)
	assert.Equal(t, 1, page.Page)
}
