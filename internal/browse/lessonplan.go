package browse

import (
	"fmt"
	"strings"

	"github.com/andytrench/history-media-hunter/internal/model"
)

// BuildLessonPlan assembles a printable lesson plan for a media item in
// the context of its topic. Fields embedded on the media record override
// the generated defaults field-by-field.
func BuildLessonPlan(m *model.Media, topic *model.Topic) model.LessonPlan {
	var embedded model.LessonPlan
	if m.LessonPlan != nil {
		embedded = *m.LessonPlan
	}

	topicName := topic.Name
	if topicName == "" {
		topicName = "this topic"
	}

	plan := model.LessonPlan{
		Objectives:          embedded.Objectives,
		Connection:          embedded.Connection,
		BeforeViewing:       embedded.BeforeViewing,
		DiscussionQuestions: embedded.DiscussionQuestions,
		Extensions:          embedded.Extensions,
	}

	if len(plan.Objectives) == 0 {
		plan.Objectives = []string{
			fmt.Sprintf("Understand key aspects of %s as portrayed in %q", topicName, m.Title),
			"Analyze perspectives on historical events",
			"Evaluate accuracy of historical media",
			"Connect content to broader curriculum themes",
		}
	}

	if plan.Connection == "" {
		subtopics := topic.Subtopics
		if len(subtopics) > 3 {
			subtopics = subtopics[:3]
		}
		connection := fmt.Sprintf("Supports study of %s.", topicName)
		if m.Relevance != "" {
			connection += " " + m.Relevance
		}
		if len(subtopics) > 0 {
			connection += " Subtopics: " + strings.Join(subtopics, ", ") + "."
		}
		plan.Connection = connection
	}

	if len(plan.BeforeViewing) == 0 {
		before := []string{
			fmt.Sprintf("Review background on %s", topicName),
			"Introduce key vocabulary",
			"Discuss fact vs. dramatization",
		}
		if m.Notes != "" {
			before = append(before, "Note: "+m.Notes)
		}
		plan.BeforeViewing = before
	}

	if len(plan.DiscussionQuestions) == 0 {
		plan.DiscussionQuestions = []string{
			fmt.Sprintf("What did you learn about %s?", topicName),
			"How did filmmakers want you to feel?",
			"What might differ from actual history?",
			"How does this connect to class content?",
		}
	}

	if len(plan.Extensions) == 0 {
		plan.Extensions = []string{
			"Compare film to primary sources",
			"Write from a character's perspective",
			"Create visual timeline of events",
			"Research related topic",
		}
	}

	return plan
}
