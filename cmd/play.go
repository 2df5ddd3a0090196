package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audite/eartrain/constants"
	"github.com/audite/eartrain/progression"
	"github.com/audite/eartrain/synth"
	"github.com/audite/eartrain/wave"
)

var (
	playNumChords  int
	playCommonOnly bool
	playNoTonic    bool
	playNoBass     bool
	playInstrument string
	playOut        string
	playGap        float64
	playReveal     bool
)

func init() {
	playCmd.Flags().IntVarP(&playNumChords, "chords", "n", 0, "progression length, 0 for random")
	playCmd.Flags().BoolVar(&playCommonOnly, "common", false, "sample from the curated progression library")
	playCmd.Flags().BoolVar(&playNoTonic, "no-tonic", false, "don't force the progression to start on I")
	playCmd.Flags().BoolVar(&playNoBass, "no-bass", false, "omit the bass root under each chord")
	playCmd.Flags().StringVarP(&playInstrument, "instrument", "i", "piano", "instrument profile")
	playCmd.Flags().StringVarP(&playOut, "out", "o", "progression.wav", "output wav path")
	playCmd.Flags().Float64Var(&playGap, "gap", 0.2, "silence between chords in seconds")
	playCmd.Flags().BoolVar(&playReveal, "reveal", false, "print the progression instead of keeping it a quiz")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Renders a progression to a wav file",
	Long:  `Generates a progression, voice-leads it and renders it to a wav file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := play(); err != nil {
			panic(err.Error())
		}
	},
}

func renderProgressionWav(t *progression.Trainer, opts progression.RenderOptions, instrument string, gap float64) ([]float64, error) {
	freqs, err := t.Frequencies(opts)
	if err != nil {
		return nil, err
	}

	s := synth.New(constants.SampleRate)
	prof := synth.ProfileFor(instrument)
	silence := make([]float64, int(float64(constants.SampleRate)*gap))

	var samples []float64
	current := t.Current()
	for i, chordFreqs := range freqs {
		buf, err := s.Chord(chordFreqs, constants.DefaultChordDuration, prof, synth.ChordOptions{
			RootPitchClass:       current[i].Root(),
			RootVolumeMultiplier: 1.0,
		})
		if err != nil {
			return nil, err
		}
		if i > 0 {
			samples = append(samples, silence...)
		}
		samples = append(samples, buf...)
	}
	return samples, nil
}

func play() error {
	t := progression.NewTrainer()
	if _, err := t.Generate(progression.GenerateOptions{
		NumChords:     playNumChords,
		StartOnTonic:  !playNoTonic,
		UseCommonOnly: playCommonOnly,
	}); err != nil {
		return err
	}

	opts := progression.DefaultRenderOptions()
	opts.IncludeBass = !playNoBass

	samples, err := renderProgressionWav(t, opts, playInstrument, playGap)
	if err != nil {
		return err
	}
	if err := wave.EncodeFile(playOut, samples, constants.SampleRate); err != nil {
		return err
	}

	fmt.Printf("wrote %v chords to %v\n", len(t.Current()), playOut)
	if playReveal {
		fmt.Println(progression.FormatProgression(t.Current()))
	}
	return nil
}
