package cli

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/resolver"
)

// confirmFunc shows a question and returns the operator's answer.
type confirmFunc func(q resolver.Question) (bool, error)

// promptResolver asks questions on the terminal. Without a terminal, or
// when the prompt fails, the question's default is used.
type promptResolver struct {
	interactive bool
	confirm     confirmFunc
}

// Ask implements resolver.ConflictResolver.
func (p *promptResolver) Ask(q resolver.Question) bool {
	if !p.interactive {
		logger.Warn("No terminal to ask on, using default answer", logger.Fields{
			"question": q.Kind,
			"answer":   q.Default,
		})
		return q.Default
	}

	answer, err := p.confirm(q)
	if err != nil {
		logger.Warn("Prompt failed, using default answer", logger.Fields{
			"question": q.Kind,
			"error":    err.Error(),
		})
		return q.Default
	}
	return answer
}

func ptermConfirm(q resolver.Question) (bool, error) {
	pterm.DefaultSection.Println(q.Title)
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(q.Default).
		Show(q.Message)
}

// newResolver picks how confirmations are answered: --yes and --no answer
// every question, otherwise the operator is asked.
func newResolver(yes, no bool) (resolver.ConflictResolver, error) {
	switch {
	case yes && no:
		return nil, errutils.ErrConflictingAnswers
	case yes:
		return resolver.Fixed(true), nil
	case no:
		return resolver.Fixed(false), nil
	}
	return &promptResolver{
		interactive: isTerminal(os.Stdin),
		confirm:     ptermConfirm,
	}, nil
}
