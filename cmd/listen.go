package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/audite/eartrain/constants"
	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/progression"
	"github.com/audite/eartrain/theory"
	"github.com/audite/eartrain/util"
	"github.com/audite/eartrain/wave"
)

var (
	listenPort int
	listenOut  string
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "midi input port number")
	listenCmd.Flags().StringVarP(&listenOut, "out", "o", "exercise.wav", "wav path each exercise is rendered to")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Answer exercises on a midi keyboard",
	Long: `Renders an exercise to a wav file, then listens on a midi keyboard: play
the progression back chord by chord and the held notes are matched against
the chord vocabulary as your answer.`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

// matchSymbol finds the chord whose root-position pitch classes equal the
// played set. Octaves and doublings are ignored; inversions match because
// pitch classes are inversion-invariant.
func matchSymbol(keys []uint8) (model.ChordSymbol, bool) {
	played := make(map[int]bool)
	for _, k := range keys {
		played[int(k)%12] = true
	}

	for _, c := range model.AllChordSymbols {
		classes := make(map[int]bool)
		for _, n := range theory.Voice(c, 0) {
			classes[((n % 12) + 12) % 12] = true
		}
		if len(classes) != len(played) {
			continue
		}
		match := true
		for pc := range played {
			if !classes[pc] {
				match = false
				break
			}
		}
		if match {
			return c, true
		}
	}
	return 0, false
}

type answerSession struct {
	mu      sync.Mutex
	onNotes map[uint8]bool
	guess   model.Progression
	trainer *progression.Trainer
}

func (a *answerSession) nextExercise() {
	if _, err := a.trainer.Generate(progression.GenerateOptions{StartOnTonic: true}); err != nil {
		panic(err.Error())
	}
	samples, err := renderProgressionWav(a.trainer, progression.DefaultRenderOptions(), "piano", 0.2)
	if err != nil {
		panic(err.Error())
	}
	if err := wave.EncodeFile(listenOut, samples, constants.SampleRate); err != nil {
		panic(err.Error())
	}
	a.guess = nil
	fmt.Printf("new exercise (%v chords) written to %v\n", len(a.trainer.Current()), listenOut)
}

// capture runs debounced once the held notes settle.
func (a *answerSession) capture() {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := util.GetKeys(a.onNotes)
	if len(keys) < 3 {
		return
	}

	c, ok := matchSymbol(keys)
	if !ok {
		fmt.Printf("no chord matches notes %v\n", keys)
		return
	}
	a.guess = append(a.guess, c)
	fmt.Printf("heard %v (%v of %v)\n", c, len(a.guess), len(a.trainer.Current()))

	if len(a.guess) < len(a.trainer.Current()) {
		return
	}
	correct, err := a.trainer.SubmitAnswer(a.guess)
	if err != nil {
		panic(err.Error())
	}
	if correct {
		fmt.Println("correct!")
	} else {
		fmt.Printf("nope, it was %v\n", progression.FormatProgression(a.trainer.Current()))
	}
	a.nextExercise()
}

func listen() {
	defer midi.CloseDriver()

	in, err := midi.InPort(listenPort)
	if err != nil {
		fmt.Printf("can't find midi input port %v\n", listenPort)
		return
	}

	session := &answerSession{
		onNotes: make(map[uint8]bool),
		trainer: progression.NewTrainer(),
	}
	session.nextExercise()

	debounced := debounce.New(300 * time.Millisecond)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			session.mu.Lock()
			session.onNotes[key] = true
			session.mu.Unlock()
			debounced(session.capture)
		case msg.GetNoteEnd(&ch, &key):
			session.mu.Lock()
			delete(session.onNotes, key)
			session.mu.Unlock()
		default:
			// ignore
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer stop()

	select {}
}
