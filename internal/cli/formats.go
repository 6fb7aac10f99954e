package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/civicdata-il/protokol/internal/pipeline"
	"github.com/spf13/cobra"
)

// formatsCmd lists the registered municipality formats
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered municipality formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.NewPipeline(buildConfig())
		for _, code := range p.Formats().List() {
			f, err := p.Formats().Get(code)
			if err != nil {
				continue
			}
			fmt.Printf("%-10s %s\n", f.Code(), f.HebrewName())
		}
		return nil
	},
}

// providersCmd probes the extraction provider chain
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Check which extraction providers are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		p := pipeline.NewPipeline(buildConfig())
		fmt.Println("pattern: available")
		fmt.Printf("ollama:  %s\n", availability(p.Router().LocalAvailable(ctx)))
		fmt.Printf("openai:  %s\n", availability(p.Router().CloudAvailable(ctx)))
		return nil
	},
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(providersCmd)
}
