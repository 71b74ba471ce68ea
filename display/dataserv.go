package cyclorama

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	Cs "github.com/maroda/cyclorama/server"
)

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket frame stream
// - Version and system info for programmatic use
// - Timeline control: goto, next, prev, hover
func (v *View) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", v.Stats.Handler())
	r.HandleFunc("/ws", v.WebsocketHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(v.StatsMiddleware)
	api.HandleFunc("/version", v.VersionHandler).Methods(http.MethodGet)
	api.HandleFunc("/system", v.SystemHandler).Methods(http.MethodGet)
	api.HandleFunc("/frame", v.FrameHandler).Methods(http.MethodGet)
	api.HandleFunc("/periods", v.PeriodsHandler).Methods(http.MethodGet)
	api.HandleFunc("/goto/{index:[0-9]+}", v.GoToHandler).Methods(http.MethodPost)
	api.HandleFunc("/next", v.NavHandler("next")).Methods(http.MethodPost)
	api.HandleFunc("/prev", v.NavHandler("prev")).Methods(http.MethodPost)
	api.HandleFunc("/hover/{index:[0-9]+}", v.HoverHandler).Methods(http.MethodPost, http.MethodDelete)

	return r
}

var Version = "dev"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Could not encode response", slog.Any("Error", err))
	}
}

func (v *View) VersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// SystemInfo describes how this instance is running
type SystemInfo struct {
	Version  string `json:"version"`
	Periods  int    `json:"periods"`
	FPS      int    `json:"fps"`
	Headless bool   `json:"headless"`
	Output   string `json:"output"`
	MIDIPort string `json:"midiPort,omitempty"`
	MIDIRoot int    `json:"midiRoot,omitempty"`
}

func (v *View) SystemHandler(w http.ResponseWriter, r *http.Request) {
	info := SystemInfo{
		Version:  Version,
		Periods:  len(v.Timeline.Periods()),
		FPS:      v.FPS,
		Headless: v.Screen == nil,
		Output:   "none",
	}
	if v.Output != nil {
		info.Output = v.Output.Type()
	}
	v.getMIDISystemInfo(&info)
	writeJSON(w, http.StatusOK, info)
}

func (v *View) FrameHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, v.Timeline.Frame())
}

func (v *View) PeriodsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, v.Timeline.Periods())
}

// pathIndex reads the {index} route variable
func pathIndex(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["index"])
}

// GoToHandler is a point click from the outside
func (v *View) GoToHandler(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	err = v.Timeline.GoTo(index)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]int{"active": v.Timeline.Active()})
	case errors.Is(err, Cs.ErrIndexRange):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, Cs.ErrNotMounted):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	}
}

// NavHandler serves the outer prev and next buttons.
// A request dropped by the transition lock answers 409.
func (v *View) NavHandler(direction string) http.HandlerFunc {
	move := v.Timeline.Next
	if direction == "prev" {
		move = v.Timeline.Prev
	}
	return func(w http.ResponseWriter, r *http.Request) {
		moved := move()
		status := http.StatusOK
		if !moved {
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]any{"moved": moved, "active": v.Timeline.Active()})
	}
}

// HoverHandler is hover enter on POST and hover exit on DELETE
func (v *View) HoverHandler(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil || !v.Timeline.Hover(index, r.Method == http.MethodPost) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such point"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
