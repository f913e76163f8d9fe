package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard/internal/validator"
	"github.com/aretw0/flowguard/pkg/domain"
)

func TestStructuralPass(t *testing.T) {
	t.Run("Empty Flow", func(t *testing.T) {
		res := validate(newFlow(nil))

		assert.False(t, res.IsValid)
		assert.Equal(t, []domain.IssueKind{domain.IssueMissingStartBlock, domain.IssueMissingStartBlock}, kinds(res.Errors))
		assert.Contains(t, res.Errors[0].Message, "at least one block")
	})

	t.Run("No Start", func(t *testing.T) {
		res := validate(newFlow([]domain.Node{message("a", "hi"), message("b", "there")}, edge("a", "b")))

		require.Len(t, ofKind(res.Errors, domain.IssueMissingStartBlock), 1)
		assert.False(t, res.IsValid)
	})

	t.Run("Duplicate Start", func(t *testing.T) {
		res := validate(newFlow([]domain.Node{start("s1"), start("s2")}))

		starts := ofKind(res.Errors, domain.IssueMissingStartBlock)
		require.Len(t, starts, 1)
		assert.Contains(t, starts[0].Message, "2 start blocks")
		assert.Equal(t, "s2", starts[0].NodeID)
	})

	t.Run("Over The Ceiling", func(t *testing.T) {
		res := validate(newFlow(manyMessages(101)))

		exceeded := ofKind(res.Errors, domain.IssueMaxBlocksExceeded)
		require.Len(t, exceeded, 1)
		assert.Equal(t, "divide into smaller flows", exceeded[0].Suggestion)
	})

	t.Run("At The Ceiling", func(t *testing.T) {
		res := validate(newFlow(manyMessages(100)))
		assert.Empty(t, ofKind(res.Errors, domain.IssueMaxBlocksExceeded))
	})

	t.Run("Injected Ceiling", func(t *testing.T) {
		engine := validator.New(domain.Limits{MaxBlocks: 3})
		res, err := engine.Validate(newFlow(manyMessages(4)))
		require.NoError(t, err)
		assert.Len(t, ofKind(res.Errors, domain.IssueMaxBlocksExceeded), 1)
	})

	t.Run("Checks Do Not Short Circuit", func(t *testing.T) {
		nodes := append(manyMessages(101), start("again"))
		res := validate(newFlow(nodes))

		assert.Len(t, ofKind(res.Errors, domain.IssueMaxBlocksExceeded), 1)
		assert.Len(t, ofKind(res.Errors, domain.IssueMissingStartBlock), 1)
	})
}
