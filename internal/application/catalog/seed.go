package catalog

import (
	"embed"
	"fmt"
	"strings"

	"task-prompt-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type seedPrompt struct {
	id          int64
	name        string
	description string
	file        string
	returnsJSON bool
}

var seedPrompts = []seedPrompt{
	{id: 1, name: "Action Plan", description: "Create an Action Plan", file: "action_plan.txt"},
	{id: 2, name: "Motivation", description: "Motivate Me", file: "motivation.txt"},
	{id: 3, name: "Related Tasks", description: "Suggest Related Tasks", file: "related_tasks.txt", returnsJSON: true},
}

const seedCost = 1

// DefaultPrompts returns the built-in prompt catalog.
func DefaultPrompts() ([]*entity.AIPrompt, error) {
	prompts := make([]*entity.AIPrompt, 0, len(seedPrompts))
	for _, s := range seedPrompts {
		body, err := templatesFS.ReadFile("templates/" + s.file)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", s.file, err)
		}
		tpl := strings.TrimRight(string(body), "\n")
		if !strings.Contains(tpl, entity.TaskDescriptionPlaceholder) {
			return nil, fmt.Errorf("template %s has no %s placeholder", s.file, entity.TaskDescriptionPlaceholder)
		}
		prompts = append(prompts, &entity.AIPrompt{
			ID:             s.id,
			Name:           s.name,
			Description:    s.description,
			Cost:           seedCost,
			PromptTemplate: tpl,
			ReturnsJSON:    s.returnsJSON,
		})
	}
	return prompts, nil
}
