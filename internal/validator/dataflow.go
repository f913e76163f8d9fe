package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/flowguard/pkg/domain"
)

var variablePattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// DataflowPass reports {{variable}} references that no block declares.
//
// Declarations are collected flow-wide, regardless of execution order: a variable
// declared anywhere in the graph counts for every use.
type DataflowPass struct{}

func (DataflowPass) Name() string { return "dataflow" }

func (DataflowPass) Check(g *Graph, c *Collector) {
	declared := DeclaredVariables(g)

	for _, block := range g.Blocks() {
		for _, text := range block.Texts() {
			for _, ref := range References(text) {
				if declared[ref] {
					continue
				}
				c.Error(domain.IssueMissingVariable, block.Info().ID,
					fmt.Sprintf("variable %q is used but never declared", ref),
					fmt.Sprintf("add a question block that saves the answer to %q", ref))
			}
		}
	}
}

// DeclaredVariables returns the set of variable names declared anywhere in the flow,
// plus the configured built-ins.
func DeclaredVariables(g *Graph) map[string]bool {
	declared := make(map[string]bool)
	for _, name := range g.Limits().BuiltinVariables {
		if bare := domain.BareVariable(name); bare != "" {
			declared[bare] = true
		}
	}
	for _, block := range g.Blocks() {
		for _, name := range block.Declarations() {
			declared[name] = true
		}
	}
	return declared
}

// References extracts the trimmed interiors of every {{ ... }} in text, in order.
// Empty placeholders are ignored.
func References(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if ref := strings.TrimSpace(m[1]); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
