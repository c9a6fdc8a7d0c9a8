package scenario

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/phanxgames/grove"
)

// resultVar receives the value of a condition expression.
const resultVar = "__result"

// conditionVars are the node fields a condition can read, plus the number of
// completed While iterations.
var conditionVars = []string{"x", "y", "scale_x", "scale_y", "rotation", "opacity", "visible", "iteration"}

// CompileCondition compiles a Tengo expression into a grove.Condition. The
// expression sees the animated node as x, y, scale_x, scale_y, rotation,
// opacity and visible, and the completed iteration count as iteration; the
// math and text modules are importable. The While loop repeats while the
// expression is truthy. A script that fails at run time is logged to log and
// ends the loop.
func CompileCondition(expr string, log *slog.Logger) (grove.Condition, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("scenario: empty condition")
	}
	src := resultVar + " := (" + expr + ")"
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	for _, name := range conditionVars {
		var zero any = 0.0
		switch name {
		case "visible":
			zero = false
		case "iteration":
			zero = 0
		}
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("scenario: condition %q: %w", expr, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: condition %q: %w", expr, err)
	}

	return func(n *grove.Node, iterations int) bool {
		if err := bindNode(compiled, n, iterations); err != nil {
			log.Warn("condition bind failed", slog.String("condition", expr), slog.Any("err", err))
			return false
		}
		if err := compiled.Run(); err != nil {
			log.Warn("condition failed", slog.String("condition", expr), slog.Any("err", err))
			return false
		}
		return !compiled.Get(resultVar).Object().IsFalsy()
	}, nil
}

func bindNode(c *tengo.Compiled, n *grove.Node, iterations int) error {
	values := [...]struct {
		name  string
		value any
	}{
		{"x", n.X},
		{"y", n.Y},
		{"scale_x", n.ScaleX},
		{"scale_y", n.ScaleY},
		{"rotation", n.Rotation},
		{"opacity", n.Opacity},
		{"visible", n.Visible},
		{"iteration", iterations},
	}
	for _, v := range values {
		if err := c.Set(v.name, v.value); err != nil {
			return err
		}
	}
	return nil
}
