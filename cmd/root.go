package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eartrain",
	Short: "Chord progression ear training",
	Long:  `Generates voice-led chord progressions and synthesizes them for ear training.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
