package interactive

import (
	"context"
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// ConfirmPrompt asks yes/no questions on the terminal
type ConfirmPrompt struct{}

// NewConfirmPrompt creates a new terminal confirmation gate
func NewConfirmPrompt() *ConfirmPrompt {
	return &ConfirmPrompt{}
}

// Confirm returns false on "n" and domain.ErrAborted on Ctrl-C or EOF
func (p *ConfirmPrompt) Confirm(ctx context.Context, message string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, promptError(err)
	}
}

// GasPricePrompt reads a gas price on the terminal
type GasPricePrompt struct{}

// NewGasPricePrompt creates a new terminal gas price prompter
func NewGasPricePrompt() *GasPricePrompt {
	return &GasPricePrompt{}
}

func (p *GasPricePrompt) PromptGasPrice(ctx context.Context, query usecase.GasPriceQuery) (string, error) {
	prompt := promptui.Prompt{
		Label:     query.Label,
		Default:   query.Default,
		AllowEdit: true,
		Validate:  promptui.ValidateFunc(query.Validate),
	}

	value, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return value, nil
}

// promptError maps promptui cancellation to an operator abort
func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return domain.ErrAborted
	}
	return err
}

var (
	_ usecase.ConfirmationGate = (*ConfirmPrompt)(nil)
	_ usecase.GasPricePrompter = (*GasPricePrompt)(nil)
)
