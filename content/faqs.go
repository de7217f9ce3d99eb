package content

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// FaqPlan is the set of writes that turns a service's stored FAQs into a submitted list.
type FaqPlan struct {
	Delete []uuid.UUID
	Update []models.Faq
	Insert []models.Faq
}

func (p FaqPlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// PlanFaqSync diffs submitted against existing, the FAQs currently owned by serviceID.
// Submitted rows without an id become inserts, rows with an id overwrite that FAQ when its
// content or position changed, and existing FAQs absent from the submission are deleted. An id that is
// not owned by the service, or that appears twice, fails validation and yields no plan.
func PlanFaqSync(serviceID uuid.UUID, existing []models.Faq, submitted []FaqInput) (FaqPlan, errs.ValidationErrors) {
	v := errs.ValidationErrors{}

	owned := make(map[uuid.UUID]models.Faq, len(existing))
	for _, f := range existing {
		owned[f.ID] = f
	}

	var plan FaqPlan
	kept := make(map[uuid.UUID]bool, len(submitted))
	for i, item := range submitted {
		if item.ID == "" {
			plan.Insert = append(plan.Insert, models.Faq{ServiceID: serviceID, Question: item.Question, Answer: item.Answer, Position: i})
			continue
		}

		field := fmt.Sprintf("faqs.%d.id", i)
		id, err := uuid.Parse(item.ID)
		if err != nil {
			v.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
			continue
		}
		current, ok := owned[id]
		if !ok {
			v.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
			continue
		}
		if kept[id] {
			v.Add(field, fmt.Sprintf("The %s field has a duplicate value.", field))
			continue
		}
		kept[id] = true

		if current.Question != item.Question || current.Answer != item.Answer || current.Position != i {
			current.Question = item.Question
			current.Answer = item.Answer
			current.Position = i
			plan.Update = append(plan.Update, current)
		}
	}
	if len(v) > 0 {
		return FaqPlan{}, v
	}

	for _, f := range existing {
		if !kept[f.ID] {
			plan.Delete = append(plan.Delete, f.ID)
		}
	}
	return plan, nil
}
