package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/domain"
)

// tdeeHuhTheme returns a huh theme matching the Gruvbox formatter palette.
func tdeeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// logFormValues holds the raw text a user types into the log form.
type logFormValues struct {
	Weight   string
	Calories string
}

func (v logFormValues) parse() (weight, calories *float64, err error) {
	if weight, err = parseOptionalFloatInput(v.Weight); err != nil {
		return nil, nil, fmt.Errorf("weight: %w", err)
	}
	if calories, err = parseOptionalFloatInput(v.Calories); err != nil {
		return nil, nil, fmt.Errorf("calories: %w", err)
	}
	if weight == nil && calories == nil {
		return nil, nil, fmt.Errorf("enter a weight or a calorie value")
	}
	return weight, calories, nil
}

func validateOptionalNonNegative(s string) error {
	v, err := parseOptionalFloatInput(s)
	if err != nil {
		return err
	}
	if v != nil && *v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// newLogForm builds the prompt used by "log add" when no values are given.
// placeholder shows the previous weight, if any.
func newLogForm(date string, placeholder *float64, values *logFormValues) *huh.Form {
	weightHint := "e.g. 80.5"
	if placeholder != nil {
		weightHint = fmt.Sprintf("last %.1f", *placeholder)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Weight (kg)").
				Description("Log for "+date+". Leave blank to skip.").
				Placeholder(weightHint).
				Value(&values.Weight).
				Validate(validateOptionalNonNegative),
			huh.NewInput().
				Title("Calories (kcal)").
				Description("Total intake for the day. Leave blank to skip.").
				Placeholder("e.g. 2200").
				Value(&values.Calories).
				Validate(validateOptionalNonNegative),
		),
	).WithTheme(tdeeHuhTheme()).WithShowHelp(false)
}

func newResetConfirm(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete every log entry and reset the profile?").
				Description("This cannot be undone. Export first if you want a backup.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(confirmed),
		),
	).WithTheme(tdeeHuhTheme()).WithShowHelp(false)
}

// latestWeight returns the newest weight in entries ordered newest first.
func latestWeight(entries []domain.LogEntry) *float64 {
	for _, e := range entries {
		if e.HasWeight() {
			return e.Weight
		}
	}
	return nil
}
