package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "farolctl",
		Short:         "Farol operations tool",
		Long:          "farolctl checks vendor access for the realtime interview and runs the speech and screenshot services locally.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newDiagnoseCmd(),
		newSpeakCmd(),
		newScreenshotCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("farolctl %s\n", Version))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
