//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/audite/eartrain/cmd"
	"github.com/audite/eartrain/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "eartrain-e2e")
	if err != nil {
		panic(err.Error())
	}
	os.Setenv("EARTRAIN_DATA_PATH", filepath.Join(dir, "eartrain.json"))
	cmd.LoadServeState()

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func jsonBody(v any) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func doJSON(handler http.HandlerFunc, method, target, sessionID string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, target, body)
	if sessionID != "" {
		req.Header.Set(cmd.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w.Result()
}

func TestHealthE2E(t *testing.T) {
	resp := doJSON(cmd.HandleHealth, http.MethodGet, "/api/health", "", nil)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var health model.HealthResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal("ok", health.Status)
}

func TestGenerateProgressionE2E(t *testing.T) {
	body := jsonBody(model.ProgressionRequestBody{NumChords: 4, StartOnTonic: true})
	resp := doJSON(cmd.HandleNewProgression, http.MethodPost, "/api/progression", "", body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.NotEmpty(resp.Header.Get(cmd.SessionHeader))

	var pr model.ProgressionResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&pr))
	assert.Equal(4, pr.Length)
	assert.Len(pr.Progression, 4)
	assert.Len(pr.Frequencies, 4)
	assert.Equal("I", pr.Progression[0])
	for _, chord := range pr.Frequencies {
		assert.GreaterOrEqual(len(chord), 3)
	}
}

func TestAnswerFlowE2E(t *testing.T) {
	assert := assert.New(t)

	chosen := []string{"I", "IV", "V"}
	resp := doJSON(cmd.HandleUseProgression, http.MethodPost, "/api/use-progression",
		"answer-flow", jsonBody(model.CustomProgressionBody{Progression: chosen}))
	assert.Equal(200, resp.StatusCode)

	resp = doJSON(cmd.HandleCheckAnswer, http.MethodPost, "/api/check-answer",
		"answer-flow", jsonBody(model.CheckAnswerRequestBody{Progression: []string{"I", "IV", "VI"}}))
	assert.Equal(200, resp.StatusCode)

	var check model.CheckAnswerResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&check))
	assert.False(check.Correct)
	assert.Equal(chosen, check.Actual)

	resp = doJSON(cmd.HandleCheckAnswer, http.MethodPost, "/api/check-answer",
		"answer-flow", jsonBody(model.CheckAnswerRequestBody{Progression: chosen}))
	assert.Equal(200, resp.StatusCode)

	assert.NoError(json.NewDecoder(resp.Body).Decode(&check))
	assert.True(check.Correct)
	assert.Equal(chosen, check.User)
}

func TestCheckAnswerWithoutProgressionE2E(t *testing.T) {
	resp := doJSON(cmd.HandleCheckAnswer, http.MethodPost, "/api/check-answer",
		"fresh-session", jsonBody(model.CheckAnswerRequestBody{Progression: []string{"I"}}))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPlayChordE2E(t *testing.T) {
	assert := assert.New(t)

	body := jsonBody(model.PlayChordRequestBody{
		Frequencies:          []float64{261.63, 329.63, 392.0},
		Instrument:           "piano",
		RootVolumeMultiplier: 2.0,
		ChordName:            "I",
	})
	resp := doJSON(cmd.HandlePlayChord, http.MethodPost, "/api/play-chord", "", body)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/wav", resp.Header.Get("Content-Type"))

	data, _ := io.ReadAll(resp.Body)
	assert.Greater(len(data), 44)
	assert.Equal("RIFF", string(data[0:4]))
	assert.Equal("WAVE", string(data[8:12]))
}

func TestPlayChordRejectsEmptyE2E(t *testing.T) {
	body := jsonBody(model.PlayChordRequestBody{Instrument: "piano"})
	resp := doJSON(cmd.HandlePlayChord, http.MethodPost, "/api/play-chord", "", body)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPlayToneE2E(t *testing.T) {
	assert := assert.New(t)

	body := jsonBody(model.PlayToneRequestBody{Frequency: 440, Instrument: "flute", Duration: 0.5})
	resp := doJSON(cmd.HandlePlayTone, http.MethodPost, "/api/play-tone", "", body)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/wav", resp.Header.Get("Content-Type"))

	data, _ := io.ReadAll(resp.Body)
	assert.Equal("RIFF", string(data[0:4]))
}

func TestDeactivatedRoundTripE2E(t *testing.T) {
	assert := assert.New(t)

	resp := doJSON(cmd.HandleSetDeactivated, http.MethodPut, "/api/deactivated",
		"deact-session", jsonBody(model.DeactivatedChordsBody{Chords: []string{"VII", "IIIAUG"}}))
	assert.Equal(200, resp.StatusCode)

	resp = doJSON(cmd.HandleGetDeactivated, http.MethodGet, "/api/deactivated", "deact-session", nil)
	assert.Equal(200, resp.StatusCode)

	var got model.DeactivatedChordsBody
	assert.NoError(json.NewDecoder(resp.Body).Decode(&got))
	assert.ElementsMatch([]string{"VII", "IIIAUG"}, got.Chords)

	// unknown chord names are rejected
	resp = doJSON(cmd.HandleSetDeactivated, http.MethodPut, "/api/deactivated",
		"deact-session", jsonBody(model.DeactivatedChordsBody{Chords: []string{"VIII"}}))
	assert.Equal(400, resp.StatusCode)
}

func TestCustomProgressionsE2E(t *testing.T) {
	assert := assert.New(t)

	resp := doJSON(cmd.HandleSaveCustomProgression, http.MethodPost, "/api/custom-progressions",
		"", jsonBody(model.CustomProgressionBody{Progression: []string{"I", "VIm7", "IIm7", "V7"}}))
	assert.Equal(201, resp.StatusCode)

	resp = doJSON(cmd.HandleListCustomProgressions, http.MethodGet, "/api/custom-progressions", "", nil)
	assert.Equal(200, resp.StatusCode)

	var list model.CustomProgressionsResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&list))
	assert.Contains(list.Progressions, []string{"I", "VIM7", "IIM7", "V7"})
}
