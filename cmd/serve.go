package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/audite/eartrain/constants"
	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/progression"
	"github.com/audite/eartrain/store"
	"github.com/audite/eartrain/synth"
	"github.com/audite/eartrain/wave"
)

// SessionHeader carries the session id; absent or unknown ids get a fresh
// trainer and the new id is echoed back in the same header.
const SessionHeader = "X-Session-Id"

var (
	sessionsMu sync.Mutex
	sessions   map[string]*progression.Trainer

	serveSynth *synth.Synthesizer
	serveStore store.Store
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP API",
	Long:  `Runs the HTTP API`,
	Run: func(cmd *cobra.Command, args []string) {
		LoadServeState()
		serve()
	},
}

func newStore() store.Store {
	if constants.GetStoreBackend() == "dynamo" {
		s, err := store.NewDynamoStore()
		if err != nil {
			panic("Could not create dynamo store: " + err.Error())
		}
		return s
	}
	return store.NewFileStore(constants.GetDataPath())
}

// LoadServeState initializes the session registry, synthesizer and store.
// Exported so e2e tests can drive the handlers without a listener.
func LoadServeState() {
	sessions = make(map[string]*progression.Trainer)
	serveSynth = synth.New(constants.SampleRate)
	serveStore = newStore()
}

// trainerFor returns the caller's session trainer, creating one seeded with
// the persisted deactivated-chord list when the id is new. The (possibly
// fresh) id is echoed in the response header so clients can stick to it.
func trainerFor(w http.ResponseWriter, r *http.Request) *progression.Trainer {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}

	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	t, ok := sessions[id]
	if !ok {
		t = progression.NewTrainer()
		if names, err := serveStore.LoadList(store.DeactivatedChordsKey); err == nil && len(names) > 0 {
			if err := t.Deactivate(names); err != nil {
				log.Printf("ignoring bad persisted deactivated list: %v", err)
			}
		}
		sessions[id] = t
	}

	w.Header().Set(SessionHeader, id)
	return t
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeWav(w http.ResponseWriter, samples []float64) {
	data, err := wave.EncodeBytes(samples, constants.SampleRate)
	if err != nil {
		writeError(w, 500, "could not encode wav: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Write(data)
}

func progressionResponse(t *progression.Trainer) (model.ProgressionResponse, error) {
	freqs, err := t.Frequencies(progression.DefaultRenderOptions())
	if err != nil {
		return model.ProgressionResponse{}, err
	}
	current := t.Current()
	names := make([]string, len(current))
	for i, c := range current {
		names[i] = c.String()
	}
	return model.ProgressionResponse{
		Progression: names,
		Length:      len(current),
		Frequencies: freqs,
	}, nil
}

func HandleNewProgression(w http.ResponseWriter, r *http.Request) {
	// start_on_tonic defaults true when omitted
	body := model.ProgressionRequestBody{StartOnTonic: true}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	t := trainerFor(w, r)
	_, err := t.Generate(progression.GenerateOptions{
		NumChords:     body.NumChords,
		StartOnTonic:  body.StartOnTonic,
		UseCommonOnly: body.UseCommonOnly,
	})
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	res, err := progressionResponse(t)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, res)
}

func HandlePlayChord(w http.ResponseWriter, r *http.Request) {
	body := model.PlayChordRequestBody{RootVolumeMultiplier: 1.0}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}
	if len(body.Frequencies) == 0 {
		writeError(w, 400, "no frequencies provided")
		return
	}

	rootPitchClass := -1
	if c, err := model.ParseChordSymbol(body.ChordName); err == nil {
		rootPitchClass = c.Root()
	}

	samples, err := serveSynth.Chord(
		body.Frequencies,
		constants.DefaultChordDuration,
		synth.ProfileFor(body.Instrument),
		synth.ChordOptions{
			RootPitchClass:       rootPitchClass,
			RootVolumeMultiplier: body.RootVolumeMultiplier,
		},
	)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	writeWav(w, samples)
}

func HandlePlayTone(w http.ResponseWriter, r *http.Request) {
	body := model.PlayToneRequestBody{Frequency: 262.0, Duration: 1.0}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	samples, err := serveSynth.Tone(body.Frequency, body.Duration, synth.ProfileFor(body.Instrument))
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	synth.Normalize(samples, 0.9)
	writeWav(w, samples)
}

func HandleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var body model.CheckAnswerRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	guess := make(model.Progression, 0, len(body.Progression))
	for _, name := range body.Progression {
		c, err := model.ParseChordSymbol(name)
		if err != nil {
			writeError(w, 400, "unknown chord: "+name)
			return
		}
		guess = append(guess, c)
	}

	t := trainerFor(w, r)
	correct, err := t.SubmitAnswer(guess)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	actual := make([]string, 0, len(t.Current()))
	for _, c := range t.Current() {
		actual = append(actual, c.String())
	}
	user := make([]string, 0, len(guess))
	for _, c := range guess {
		user = append(user, c.String())
	}
	writeJSON(w, model.CheckAnswerResponse{Correct: correct, Actual: actual, User: user})
}

func HandleGetDeactivated(w http.ResponseWriter, r *http.Request) {
	t := trainerFor(w, r)
	names := t.DeactivatedNames()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, model.DeactivatedChordsBody{Chords: names})
}

func HandleSetDeactivated(w http.ResponseWriter, r *http.Request) {
	var body model.DeactivatedChordsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	t := trainerFor(w, r)
	if err := t.Deactivate(body.Chords); err != nil {
		if errors.Is(err, model.ErrUnknownChord) {
			writeError(w, 400, err.Error())
			return
		}
		writeError(w, 500, err.Error())
		return
	}
	if err := serveStore.SaveList(store.DeactivatedChordsKey, body.Chords); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, model.DeactivatedChordsBody{Chords: t.DeactivatedNames()})
}

func HandleListCustomProgressions(w http.ResponseWriter, r *http.Request) {
	saved, err := serveStore.LoadList(store.CustomProgressionsKey)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	res := model.CustomProgressionsResponse{Progressions: [][]string{}}
	for _, s := range saved {
		p, err := progression.ParseProgression(s)
		if err != nil {
			log.Printf("skipping unparseable saved progression %q: %v", s, err)
			continue
		}
		names := make([]string, len(p))
		for i, c := range p {
			names[i] = c.String()
		}
		res.Progressions = append(res.Progressions, names)
	}
	writeJSON(w, res)
}

func HandleSaveCustomProgression(w http.ResponseWriter, r *http.Request) {
	var body model.CustomProgressionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	p := make(model.Progression, 0, len(body.Progression))
	for _, name := range body.Progression {
		c, err := model.ParseChordSymbol(name)
		if err != nil {
			writeError(w, 400, "unknown chord: "+name)
			return
		}
		p = append(p, c)
	}
	if len(p) == 0 {
		writeError(w, 400, "empty progression")
		return
	}

	saved, err := serveStore.LoadList(store.CustomProgressionsKey)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	saved = append(saved, progression.FormatProgression(p))
	if err := serveStore.SaveList(store.CustomProgressionsKey, saved); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(201)
	json.NewEncoder(w).Encode(model.CustomProgressionBody{Progression: body.Progression})
}

// HandleUseProgression installs a caller-chosen progression as the current
// exercise, so saved custom progressions can be practiced.
func HandleUseProgression(w http.ResponseWriter, r *http.Request) {
	var body model.CustomProgressionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, 400, "could not parse request body: "+err.Error())
		return
	}

	p := make(model.Progression, 0, len(body.Progression))
	for _, name := range body.Progression {
		c, err := model.ParseChordSymbol(name)
		if err != nil {
			writeError(w, 400, "unknown chord: "+name)
			return
		}
		p = append(p, c)
	}
	if len(p) == 0 {
		writeError(w, 400, "empty progression")
		return
	}

	t := trainerFor(w, r)
	t.SetProgression(p)

	res, err := progressionResponse(t)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, res)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.HealthResponse{Status: "ok"})
}

// NewRouter wires every API route; split out so tests can mount it.
func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/progression", HandleNewProgression).Methods("POST")
	router.HandleFunc("/api/play-chord", HandlePlayChord).Methods("POST")
	router.HandleFunc("/api/play-tone", HandlePlayTone).Methods("POST")
	router.HandleFunc("/api/check-answer", HandleCheckAnswer).Methods("POST")
	router.HandleFunc("/api/deactivated", HandleGetDeactivated).Methods("GET")
	router.HandleFunc("/api/deactivated", HandleSetDeactivated).Methods("PUT")
	router.HandleFunc("/api/custom-progressions", HandleListCustomProgressions).Methods("GET")
	router.HandleFunc("/api/custom-progressions", HandleSaveCustomProgression).Methods("POST")
	router.HandleFunc("/api/use-progression", HandleUseProgression).Methods("POST")
	router.HandleFunc("/api/health", HandleHealth).Methods("GET")
	return router
}

func serve() {
	addr := constants.GetServeAddr()
	handler := cors.AllowAll().Handler(NewRouter())
	fmt.Println("listening on " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
