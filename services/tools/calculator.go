package tools

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/gojq"
)

const calculatorTimeout = 2 * time.Second

// CalculatorTool evaluates arithmetic expressions such as "(120000 - 95000) / 95000 * 100".
// Expressions are jq programs run against a null input, so jq math
// functions like pow(2; 10) and sqrt are available.
type CalculatorTool struct{}

// NewCalculatorTool creates a calculator tool.
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

// Name implements Tool.
func (t *CalculatorTool) Name() string { return "calculator" }

// Description implements Tool.
func (t *CalculatorTool) Description() string {
	return "Evaluate an arithmetic expression, e.g. salary growth or study hours. Input: an expression like (85000 - 60000) / 60000 * 100"
}

// Invoke implements Tool.
func (t *CalculatorTool) Invoke(ctx context.Context, input string) (string, error) {
	expr := strings.TrimSpace(input)
	if expr == "" {
		return "", ErrEmptyInput
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return "", fmt.Errorf("invalid expression: %w", err)
	}
	// No environment and no inputs: the expression sees only literals.
	code, err := gojq.Compile(query, gojq.WithEnvironLoader(func() []string { return nil }))
	if err != nil {
		return "", fmt.Errorf("invalid expression: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, calculatorTimeout)
	defer cancel()

	iter := code.RunWithContext(ctx, nil)
	v, ok := iter.Next()
	if !ok {
		return "", fmt.Errorf("expression produced no value")
	}
	if err, isErr := v.(error); isErr {
		return "", fmt.Errorf("evaluation failed: %w", err)
	}
	return formatNumber(v)
}

func formatNumber(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case *big.Int:
		return n.String(), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", fmt.Errorf("result is not a finite number")
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expression result is %T, not a number", v)
	}
}
