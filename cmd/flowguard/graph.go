package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard/internal/presentation/graph"
	"github.com/aretw0/flowguard/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file|dir>",
	Short: "Export a flow as a Mermaid diagram with validation markers",
	Long: `Outputs a Mermaid diagram (graph TD) of a flow. Blocks with errors are painted red,
blocks with warnings yellow. Use --flow to pick one flow from a directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		source, _ := cmd.Flags().GetString("source")
		flowID, _ := cmd.Flags().GetString("flow")
		noMarkers, _ := cmd.Flags().GetBool("no-markers")

		flows, err := collectFlows(cmd.Context(), args, source)
		if err != nil {
			return err
		}
		flow, err := pickFlow(flows, flowID)
		if err != nil {
			return err
		}

		var markers *domain.NodeMarkers
		if !noMarkers {
			res, err := newValidator(cfg, newLogger(cfg)).Validate(flow)
			if err != nil {
				return err
			}
			m := domain.GroupIssuesByNode(res)
			markers = &m
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(flow, markers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("flow", "", "Flow ID (required when the directory holds several flows)")
	graphCmd.Flags().Bool("no-markers", false, "Do not validate; draw the plain graph")
}

func pickFlow(flows []*domain.Flow, id string) (*domain.Flow, error) {
	if id == "" {
		switch len(flows) {
		case 0:
			return nil, domain.ErrFlowNotFound
		case 1:
			return flows[0], nil
		default:
			return nil, fmt.Errorf("%d flows found, choose one with --flow", len(flows))
		}
	}
	for _, f := range flows {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("flow %s: %w", id, domain.ErrFlowNotFound)
}
