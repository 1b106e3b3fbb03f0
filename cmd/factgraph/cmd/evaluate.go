package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"factgraph/core/determinism"
	"factgraph/core/evaluator"
	"factgraph/core/model"
	"factgraph/core/value"
	"factgraph/internal/config"
	"factgraph/internal/demo"
	"factgraph/internal/logging"
)

var (
	registryName string
	inputPath    string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a built-in registry against a JSON input fixture",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&registryName, "registry", "circles", "built-in registry to evaluate (circles|applicants)")
	evaluateCmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON input fixture (default: {})")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	var reg *model.Registry
	switch registryName {
	case "circles":
		reg = demo.CirclesRegistry()
	case "applicants":
		reg = demo.ApplicantsRegistry()
	default:
		return fmt.Errorf("unknown registry %q (want circles|applicants)", registryName)
	}

	input := map[string]any{}
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("reading input fixture: %w", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("parsing input fixture: %w", err)
		}
	}
	synthesizeEntityFixtures(reg, input, config.Get().Evaluation.DefaultEntityCountHint)

	ev := evaluator.New(reg, evaluator.WithStrictMode(config.Get().Evaluation.StrictMode))
	_, results, err := ev.Evaluate(input, nil)
	if err != nil {
		logging.Sugar.Errorw("evaluation failed", "error", err)
		return err
	}

	printResults(results)
	return nil
}

// synthesizeEntityFixtures pre-sizes any per-entity collection that a
// loaded fixture omits entirely, so evaluating a partial fixture against a
// registry with per-entity facts still produces a hint-sized fan-out (each
// slot an empty record, destined to fail its own input validation) instead
// of an empty one. A fixture that already supplies the collection is left
// untouched.
func synthesizeEntityFixtures(reg *model.Registry, input map[string]any, hint int) {
	if hint <= 0 {
		return
	}
	seen := map[model.EntityName]bool{}
	for _, def := range reg.Facts() {
		if def.PerEntity == nil {
			continue
		}
		name := *def.PerEntity
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, present := input[string(name)]; present {
			continue
		}
		records := make([]any, hint)
		for i := range records {
			records[i] = map[string]any{}
		}
		input[string(name)] = records
	}
}

func printResults(results *evaluator.Results) {
	entries := results.Entries()
	determinism.SortSlice(entries, func(a, b evaluator.Entry) bool {
		ak := string(a.Module) + "." + string(a.Name)
		bk := string(b.Module) + "." + string(b.Name)
		if ak != bk {
			return ak < bk
		}
		return a.EntityID < b.EntityID
	})

	for _, e := range entries {
		coord := fmt.Sprintf("%s.%s", e.Module, e.Name)
		if e.HasEntityID {
			coord = fmt.Sprintf("%s[%d]", coord, int(e.EntityID))
		}
		fmt.Printf("%s = %s\n", coord, formatValue(e.Value))
	}
}

func formatValue(v value.Value) string {
	if v.IsComputed() {
		out, err := json.Marshal(v.Payload())
		if err != nil {
			return fmt.Sprintf("%v", v.Payload())
		}
		return string(out)
	}
	out, err := json.Marshal(map[string]any{
		"bad_inputs":       v.Errors().BadInputs,
		"dependency_unmet": v.Errors().DependencyUnmet,
	})
	if err != nil {
		return v.String()
	}
	return string(out)
}
