package content

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faqs(serviceID uuid.UUID, pairs ...string) []models.Faq {
	out := make([]models.Faq, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Faq{ID: uuid.New(), ServiceID: serviceID, Question: pairs[i], Answer: pairs[i+1], Position: i / 2})
	}
	return out
}

func TestPlanFaqSync(t *testing.T) {
	serviceID := uuid.New()
	existing := faqs(serviceID, "q1", "a1", "q2", "a2", "q3", "a3")

	plan, invalid := PlanFaqSync(serviceID, existing, []FaqInput{
		{ID: existing[0].ID.String(), Question: "q1", Answer: "a1"},
		{ID: existing[1].ID.String(), Question: "q2 edited", Answer: "a2"},
		{Question: "q4", Answer: "a4"},
	})
	require.Empty(t, invalid)

	assert.Equal(t, []uuid.UUID{existing[2].ID}, plan.Delete)
	require.Len(t, plan.Update, 1, "unchanged rows are not rewritten")
	assert.Equal(t, existing[1].ID, plan.Update[0].ID)
	assert.Equal(t, "q2 edited", plan.Update[0].Question)
	require.Len(t, plan.Insert, 1)
	assert.Equal(t, serviceID, plan.Insert[0].ServiceID)
	assert.Equal(t, uuid.Nil, plan.Insert[0].ID)
	assert.Equal(t, 2, plan.Insert[0].Position)
}

func TestPlanFaqSyncRewritesMovedRows(t *testing.T) {
	serviceID := uuid.New()
	existing := faqs(serviceID, "q1", "a1", "q2", "a2")

	plan, invalid := PlanFaqSync(serviceID, existing, []FaqInput{
		{ID: existing[1].ID.String(), Question: "q2", Answer: "a2"},
		{ID: existing[0].ID.String(), Question: "q1", Answer: "a1"},
	})
	require.Empty(t, invalid)
	assert.Empty(t, plan.Delete)
	assert.Empty(t, plan.Insert)
	require.Len(t, plan.Update, 2)
	assert.Equal(t, existing[1].ID, plan.Update[0].ID)
	assert.Equal(t, 0, plan.Update[0].Position)
	assert.Equal(t, existing[0].ID, plan.Update[1].ID)
	assert.Equal(t, 1, plan.Update[1].Position)
}

func TestPlanFaqSyncEmptySubmissionDeletesAll(t *testing.T) {
	serviceID := uuid.New()
	existing := faqs(serviceID, "q1", "a1", "q2", "a2")

	plan, invalid := PlanFaqSync(serviceID, existing, nil)
	require.Empty(t, invalid)
	assert.Equal(t, []uuid.UUID{existing[0].ID, existing[1].ID}, plan.Delete)
	assert.Empty(t, plan.Update)
	assert.Empty(t, plan.Insert)

	plan, invalid = PlanFaqSync(serviceID, nil, nil)
	require.Empty(t, invalid)
	assert.True(t, plan.Empty())
}

func TestPlanFaqSyncRejectsUnownedIDs(t *testing.T) {
	serviceID := uuid.New()
	existing := faqs(serviceID, "q1", "a1")
	foreign := faqs(uuid.New(), "other", "other")[0]

	plan, invalid := PlanFaqSync(serviceID, existing, []FaqInput{
		{Question: "new", Answer: "new"},
		{ID: foreign.ID.String(), Question: "x", Answer: "y"},
		{ID: "not-a-uuid", Question: "x", Answer: "y"},
	})

	assert.True(t, plan.Empty())
	assert.Equal(t, "The selected faqs.1.id is invalid.", invalid["faqs.1.id"])
	assert.Equal(t, "The selected faqs.2.id is invalid.", invalid["faqs.2.id"])
	assert.NotContains(t, invalid, "faqs.0.id")
}

func TestPlanFaqSyncRejectsDuplicateIDs(t *testing.T) {
	serviceID := uuid.New()
	existing := faqs(serviceID, "q1", "a1")
	id := existing[0].ID.String()

	plan, invalid := PlanFaqSync(serviceID, existing, []FaqInput{
		{ID: id, Question: "a", Answer: "b"},
		{ID: id, Question: "c", Answer: "d"},
	})
	assert.True(t, plan.Empty())
	assert.Equal(t, "The faqs.1.id field has a duplicate value.", invalid["faqs.1.id"])
}

func TestValidationMessages(t *testing.T) {
	in := ServiceInput{
		Name:        strings.Repeat("x", 256),
		Description: "<script>alert(1)</script>",
		Status:      "draft",
		CategoryIDs: []string{"nope"},
		Faqs:        []FaqInput{{Question: "q", Answer: "a"}, {Question: " ", Answer: "a"}},
	}
	in.normalize()
	v := validateStruct(in)

	assert.Equal(t, "The name field must not be greater than 255 characters.", v["name"])
	assert.Equal(t, "The description field is required.", v["description"])
	assert.Equal(t, "The selected status is invalid.", v["status"])
	assert.Equal(t, "The selected category_ids.0 is invalid.", v["category_ids.0"])
	assert.Equal(t, "The faqs.1.question field is required.", v["faqs.1.question"])
	assert.NotContains(t, v, "faqs.0.question")

	contact := ContactInput{FirstName: "A", LastName: "B", Email: "not-an-email", Content: "hi"}
	contact.normalize()
	v = validateStruct(contact)
	assert.Equal(t, map[string]string{"email": "The email field must be a valid email address."}, map[string]string(v))
}

func TestSanitizeRichText(t *testing.T) {
	assert.Equal(t, "<p>Hello <strong>world</strong></p>", sanitizeRichText(`<p onclick="x()">Hello <strong>world</strong></p><script>alert(1)</script>`))
	assert.Equal(t, "", sanitizeRichText("  <script>alert(1)</script> "))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "faqs.1.question", fieldPath("ServiceInput.faqs[1].question"))
	assert.Equal(t, "name", fieldPath("CategoryInput.name"))
	assert.Equal(t, "category_ids.0", fieldPath("ProjectInput.category_ids[0]"))
}
