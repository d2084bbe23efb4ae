package session

import (
	"fmt"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// genericQuestion is the ultimate fallback when the local bank has nothing
// for a role/level combination.
const genericQuestion = "Tell me about a challenging project you worked on recently. What was your role, and what was the outcome?"

// localBank holds curated questions per role and level, used when the
// evaluation service cannot supply a question set.
var localBank = map[entities.JobRole]map[entities.ExperienceLevel][]string{
	entities.JobRoleSoftwareEngineer: {
		entities.ExperienceLevelJunior: {
			"Explain the difference between an array and a linked list. When would you pick one over the other?",
			"What happens when you type a URL into a browser and press enter?",
			"Describe a bug you fixed recently. How did you track it down?",
			"What is version control, and how do you use branches in your workflow?",
			"How do you decide when a piece of code needs a unit test?",
		},
		entities.ExperienceLevelMid: {
			"Walk me through how you would design a rate limiter for a public API.",
			"Describe a time you had to refactor a module without breaking its consumers. How did you stay safe?",
			"How do you approach debugging a performance regression in production?",
			"Explain the trade-offs between optimistic and pessimistic locking.",
			"Tell me about a technical decision you pushed back on and why.",
		},
		entities.ExperienceLevelSenior: {
			"Describe a system you designed end to end. What would you change if you built it again today?",
			"How do you evaluate build-versus-buy decisions for critical infrastructure?",
			"Tell me about a cross-team incident you led the response for. What changed afterwards?",
			"How do you balance technical debt against feature delivery when planning a quarter?",
			"Describe how you have mentored engineers through a difficult migration.",
		},
	},
	entities.JobRoleProductManager: {
		entities.ExperienceLevelMid: {
			"How do you prioritize a backlog when engineering capacity is fixed and every stakeholder is shouting?",
			"Describe a product bet you made that failed. What did you learn?",
			"Walk me through how you would validate demand for a new feature before building it.",
			"How do you communicate a roadmap change that removes a promised feature?",
			"Tell me about a metric you chose that turned out to be the wrong one.",
		},
	},
	entities.JobRoleDataAnalyst: {
		entities.ExperienceLevelMid: {
			"A dashboard metric dropped 30% overnight. Walk me through your investigation.",
			"How do you decide between a quick SQL answer and building a repeatable pipeline?",
			"Describe a time your analysis contradicted a stakeholder's expectation. How did you present it?",
			"What checks do you run before trusting a new data source?",
			"Explain a situation where correlation in your data was mistaken for causation.",
		},
	},
	entities.JobRoleUXDesigner: {
		entities.ExperienceLevelMid: {
			"Walk me through your process from a vague product brief to a testable prototype.",
			"How do you handle a situation where usability findings conflict with the product direction?",
			"Describe how you have designed for accessibility beyond meeting a checklist.",
			"Tell me about a design you shipped that users struggled with. What did you do?",
			"How do you decide when research is needed versus shipping and measuring?",
		},
	},
}

// localQuestions builds a question set from the local bank. A combination
// with no bank entries yields a single generic question so a session can
// always start.
func localQuestions(role entities.JobRole, level entities.ExperienceLevel, count int) []entities.Question {
	texts := localBank[role][level]
	if len(texts) == 0 {
		return []entities.Question{{ID: "local-1", Text: genericQuestion}}
	}
	if count > len(texts) {
		count = len(texts)
	}
	questions := make([]entities.Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, entities.Question{
			ID:   fmt.Sprintf("local-%d", i+1),
			Text: texts[i],
		})
	}
	return questions
}
