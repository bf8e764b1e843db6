package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

// YesOrNo asks a y/n question, defaulting to yes on empty or unmatched input.
func YesOrNo(question string) (string, error) {
	rl, err := readline.New(question + " [Y/n]:")
	if err != nil {
		return "", err
	}
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	if strings.ToLower(response) == No {
		return No, nil
	}
	return Yes, nil
}
