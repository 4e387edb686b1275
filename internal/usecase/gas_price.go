package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const gweiExp int32 = 9

// GasPricePolicy asks the operator for the gas price of every transaction,
// offering the node's estimate as the default. Nothing is cached between calls.
type GasPricePolicy struct {
	oracle   GasOracle
	prompter GasPricePrompter
	log      *slog.Logger
}

// NewGasPricePolicy creates a new GasPricePolicy
func NewGasPricePolicy(oracle GasOracle, prompter GasPricePrompter, log *slog.Logger) *GasPricePolicy {
	return &GasPricePolicy{
		oracle:   oracle,
		prompter: prompter,
		log:      log,
	}
}

// Resolve returns the gas price in wei for the next transaction.
// Estimates below one gwei are negotiated in wei, everything else in gwei.
func (p *GasPricePolicy) Resolve(ctx context.Context) (*big.Int, error) {
	estimate, err := p.oracle.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas price: %w", err)
	}

	estimateWei := decimal.NewFromBigInt(estimate, 0)
	estimateGwei := decimal.NewFromBigInt(estimate, -gweiExp).Truncate(0)

	var (
		query GasPriceQuery
		exp   int32
	)
	if estimateGwei.IsZero() {
		query = GasPriceQuery{
			Label:   fmt.Sprintf("Set gas price (estimated: %s wei)", estimateWei.String()),
			Default: estimateWei.String(),
		}
	} else {
		query = GasPriceQuery{
			Label:   fmt.Sprintf("Set gas price (gwei) (estimated: %s gwei)", estimateGwei.String()),
			Default: estimateGwei.String(),
		}
		exp = gweiExp
	}
	query.Validate = func(input string) error {
		_, err := parseGasPrice(input, exp)
		return err
	}

	input, err := p.prompter.PromptGasPrice(ctx, query)
	if err != nil {
		return nil, err
	}

	price, err := parseGasPrice(input, exp)
	if err != nil {
		return nil, err
	}

	p.log.Debug("gas price resolved", "estimate", estimate, "price", price)
	return price, nil
}

// parseGasPrice converts operator input in units of 10^exp wei to wei
func parseGasPrice(input string, exp int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q", input)
	}
	if d.IsNegative() {
		return nil, errors.New("gas price must not be negative")
	}
	wei := d.Shift(exp)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("gas price %q is not a whole number of wei", input)
	}
	return wei.BigInt(), nil
}
