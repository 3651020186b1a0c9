package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"

	"wellness/internal/domain"
)

const defaultChatPrompt = `You are a friendly personal wellness assistant. You help with healthy
habits, nutrition, sleep and light exercise. You never give medical
diagnoses; for anything that sounds serious you recommend seeing a doctor.
Keep answers short and practical.

{{.CombinedInput}}`

const mealPlanPrompt = `You are a nutritionist drafting a one-day meal plan.

{{.CombinedInput}}

Respond with JSON only, in this exact shape:

{
	"meals": [
		{
			"name": string,
			"category": string,
			"calories": number
		}
	],
	"explanation": string
}

"category" must be one of breakfast, lunch, dinner, or snack. Include one
breakfast, one lunch, one dinner and at least one snack.`

// AssistantService answers free-form wellness questions and drafts
// structured meal plans through an LLM chain. Each user gets a sliding
// conversation window so replies stay contextual without unbounded memory.
type AssistantService struct {
	llm llms.Model

	promptMu sync.RWMutex
	prompt   string

	histMu  sync.Mutex
	history map[int64]*memory.ConversationWindowBuffer
}

// NewAssistantService creates an AssistantService on the given model. An
// empty systemPrompt selects the built-in one.
func NewAssistantService(llm llms.Model, systemPrompt string) *AssistantService {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultChatPrompt
	}
	return &AssistantService{
		llm:     llm,
		prompt:  systemPrompt,
		history: make(map[int64]*memory.ConversationWindowBuffer),
	}
}

// SetPrompt replaces the chat system prompt. Called by the prompt-file
// watcher on change.
func (s *AssistantService) SetPrompt(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	s.promptMu.Lock()
	s.prompt = prompt
	s.promptMu.Unlock()
}

func (s *AssistantService) currentPrompt() string {
	s.promptMu.RLock()
	defer s.promptMu.RUnlock()
	return s.prompt
}

func (s *AssistantService) bufferFor(userID int64) *memory.ConversationWindowBuffer {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	buf, ok := s.history[userID]
	if !ok {
		// Only remember the last few exchanges to keep memory under control.
		buf = memory.NewConversationWindowBuffer(5)
		s.history[userID] = buf
	}
	return buf
}

// Chat sends a user message through the chat chain and returns the reply.
func (s *AssistantService) Chat(ctx context.Context, userID int64, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message is required")
	}

	buf := s.bufferFor(userID)
	vars, err := buf.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("loading conversation history: %w", err)
	}

	combined := fmt.Sprintf("History:\n%v\n\nUser: %s", vars["history"], message)
	input := map[string]any{"CombinedInput": combined}

	chain := chains.NewLLMChain(s.llm, prompts.NewPromptTemplate(s.currentPrompt(), []string{"CombinedInput"}))
	result, err := chains.Call(ctx, chain, input)
	if err != nil {
		return "", fmt.Errorf("calling chain: %w", err)
	}

	reply, _ := result["text"].(string)
	if err := buf.SaveContext(ctx, input, result); err != nil {
		// History loss degrades follow-up quality but the reply itself is fine.
		return reply, nil
	}
	return reply, nil
}

// PlannedMeal is one meal in a generated plan.
type PlannedMeal struct {
	Name     string              `json:"name"`
	Category domain.MealCategory `json:"category"`
	Calories int                 `json:"calories"`
}

// MealPlan is a structured one-day plan generated by the assistant.
type MealPlan struct {
	Meals       []PlannedMeal `json:"meals"`
	Explanation string        `json:"explanation"`
}

// SuggestMealPlan asks the model for a structured one-day plan matching the
// user's stated goals.
func (s *AssistantService) SuggestMealPlan(ctx context.Context, goals string) (*MealPlan, error) {
	if strings.TrimSpace(goals) == "" {
		goals = "a balanced day of eating"
	}

	chain := chains.NewLLMChain(s.llm, prompts.NewPromptTemplate(mealPlanPrompt, []string{"CombinedInput"}))
	result, err := chains.Call(ctx, chain, map[string]any{"CombinedInput": "Goals: " + goals})
	if err != nil {
		return nil, fmt.Errorf("calling chain: %w", err)
	}

	text, _ := result["text"].(string)
	return ParseMealPlan(text)
}

// ParseMealPlan decodes a model response into a MealPlan. Models routinely
// wrap JSON in markdown fences, so those are stripped first.
func ParseMealPlan(text string) (*MealPlan, error) {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))

	var plan MealPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, fmt.Errorf("unmarshalling plan: %w", err)
	}
	if len(plan.Meals) == 0 {
		return nil, errors.New("plan contains no meals")
	}
	for i, m := range plan.Meals {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("meal %d has no name", i)
		}
		if !m.Category.Valid() {
			return nil, fmt.Errorf("meal %q has unknown category %q", m.Name, m.Category)
		}
	}
	return &plan, nil
}
