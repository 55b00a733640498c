package cleaner

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/customeros/mailsweep/internal/enum"
	"github.com/customeros/mailsweep/internal/utils"
)

const (
	choiceYes    = "yes"
	choiceNo     = "no"
	choiceShow   = "show"
	choiceCancel = "cancel"
)

var (
	promptSubjectStyle = lipgloss.NewStyle().Bold(true)
	promptMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ConsoleConfirmer prompts on the terminal before each destructive action.
// The prompt shows the subject and a bounded body preview; picking "show"
// prints the full body and asks again.
type ConsoleConfirmer struct {
	out          io.Writer
	previewChars int
}

func NewConsoleConfirmer(out io.Writer, previewChars int) *ConsoleConfirmer {
	return &ConsoleConfirmer{
		out:          out,
		previewChars: previewChars,
	}
}

func (c *ConsoleConfirmer) Confirm(ctx context.Context, subject, body string, action enum.Action) (enum.Decision, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, promptSubjectStyle.Render(subject))
	if preview := utils.Snippet(body, c.previewChars); preview != "" {
		fmt.Fprintln(c.out, promptMetaStyle.Render(preview))
	}

	for {
		choice, err := c.ask(ctx, action)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return enum.DecisionCancel, nil
			}
			return enum.DecisionNo, errors.Wrap(err, "reading confirmation")
		}

		switch choice {
		case choiceYes:
			return enum.DecisionYes, nil
		case choiceShow:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, body)
		case choiceCancel:
			return enum.DecisionCancel, nil
		default:
			return enum.DecisionNo, nil
		}
	}
}

func (c *ConsoleConfirmer) ask(ctx context.Context, action enum.Action) (string, error) {
	choice := choiceNo

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Apply %s?", action.String())).
				Options(
					huh.NewOption("Yes", choiceYes),
					huh.NewOption("No", choiceNo),
					huh.NewOption("Show full body", choiceShow),
					huh.NewOption("Cancel run", choiceCancel),
				).
				Value(&choice),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return choice, nil
}
