package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audite/eartrain/constants"
	"github.com/audite/eartrain/midiexport"
	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/progression"
)

var (
	exportOut string
	exportBpm float64
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "progression.mid", "output midi path")
	exportCmd.Flags().Float64Var(&exportBpm, "bpm", 90, "tempo of the exported file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [chords...]",
	Short: "Exports a progression as a midi file",
	Long: `Exports a voice-led progression as a midi file. Chords can be given as
arguments ("export I IV V7") or generated when omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := export(args); err != nil {
			panic(err.Error())
		}
	},
}

func export(args []string) error {
	t := progression.NewTrainer()

	if len(args) > 0 {
		p := make(model.Progression, 0, len(args))
		for _, name := range args {
			c, err := model.ParseChordSymbol(name)
			if err != nil {
				return err
			}
			p = append(p, c)
		}
		t.SetProgression(p)
	} else if _, err := t.Generate(progression.GenerateOptions{StartOnTonic: true}); err != nil {
		return err
	}

	voiced, err := t.RenderVoiced(progression.DefaultRenderOptions())
	if err != nil {
		return err
	}
	if err := midiexport.Write(exportOut, voiced, constants.DefaultBaseOctave, exportBpm); err != nil {
		return err
	}

	fmt.Printf("wrote %v to %v\n", progression.FormatProgression(t.Current()), exportOut)
	return nil
}
