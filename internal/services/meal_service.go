package services

import (
	"context"
	"encoding/json"
	"fmt"
)

type MealPlanService struct {
	generator ContentGenerator
}

func NewMealPlanService(generator ContentGenerator) *MealPlanService {
	return &MealPlanService{generator: generator}
}

func buildMealPrompt(planType string) string {
	return fmt.Sprintf(`Generate a detailed weekly meal plan for %s training. Include breakfast, lunch, dinner, and snacks for each day. Each meal should include:
1. Name of the meal
2. Calorie count
3. List of ingredients
4. Whether it's vegetarian (if applicable)

Format the response as a JSON object with the following structure:
{
  "weeklyPlan": [
    {
      "day": "Monday",
      "meals": {
        "breakfast": {"name": "string", "calories": 0, "ingredients": "string", "isVegetarian": false},
        "lunch": {},
        "dinner": {},
        "snacks": {}
      }
    }
  ]
}`, planType)
}

// GenerateMealPlan asks the LLM for a weekly meal plan as JSON and passes it
// through after checking it is a well-formed object. There is no fallback
// here; upstream or shape failures surface to the caller.
func (s *MealPlanService) GenerateMealPlan(ctx context.Context, planType string) (json.RawMessage, error) {
	if s.generator == nil {
		return nil, ErrGeneratorDisabled
	}
	if planType == "" {
		return nil, ErrInvalidInput
	}

	raw, err := s.generator.Complete(ctx, buildMealPrompt(planType), true)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: meal plan response is not valid JSON", ErrUpstream)
	}
	return json.RawMessage(raw), nil
}
