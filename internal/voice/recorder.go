// Package voice captures dictation audio and transcribes it through an
// OpenAI-compatible endpoint. Capture devices and transcription are both
// capability interfaces decided at startup; when either is absent the stubs
// fail with DependencyUnavailable and the rest of the tool is unaffected.
package voice

import (
	"errors"
	"sync"
	"time"

	"prom9/internal/fault"
)

// ErrEmptyAudio signals a stopped recording that captured no samples.
var ErrEmptyAudio = errors.New("audio vacío: no se capturaron datos del micrófono")

// MaxRecordDuration is the hard wall-clock cap on one recording. Frames
// arriving after the cap are dropped; the recording itself stays open until
// the user stops it.
const MaxRecordDuration = 120 * time.Second

// Source delivers PCM frames from an audio input device. Implementations
// wrap whatever capture backend is compiled in; tests feed frames directly.
type Source interface {
	// Start begins capture. Fails with DependencyUnavailable when no
	// usable input device exists.
	Start() error
	// Frames returns the channel of captured PCM frames. The channel is
	// closed after Stop.
	Frames() <-chan []int16
	// Stop ends capture and closes the frame channel. The channel must be
	// closed even when Stop returns an error, or the recorder's consumer
	// would never finish draining.
	Stop() error
}

// Recorder accumulates frames from a Source up to the wall-clock cap.
// One recording at a time; Start while recording is a no-op.
type Recorder struct {
	src Source
	cap time.Duration

	mu        sync.Mutex
	frames    [][]int16
	recording bool
	started   time.Time
	drained   chan struct{}
}

// NewRecorder wraps src. A non-positive cap uses MaxRecordDuration.
func NewRecorder(src Source, recordCap time.Duration) *Recorder {
	if recordCap <= 0 {
		recordCap = MaxRecordDuration
	}
	return &Recorder{src: src, cap: recordCap}
}

// Recording reports whether a recording is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start begins accumulating frames from the source.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return nil
	}
	r.frames = nil
	r.recording = true
	r.started = time.Now()
	r.drained = make(chan struct{})
	r.mu.Unlock()

	if err := r.src.Start(); err != nil {
		r.mu.Lock()
		r.recording = false
		close(r.drained)
		r.mu.Unlock()
		return err
	}

	go r.consume()
	return nil
}

func (r *Recorder) consume() {
	defer close(r.drained)
	for frame := range r.src.Frames() {
		r.mu.Lock()
		// Past the cap: keep draining so the source never blocks, but
		// drop the audio.
		if time.Since(r.started) <= r.cap {
			r.frames = append(r.frames, frame)
		}
		r.mu.Unlock()
	}
}

// Stop ends the recording and returns the captured samples concatenated.
// Stopping before the cap transcribes whatever was captured; stopping with
// nothing captured fails with ErrEmptyAudio.
func (r *Recorder) Stop() ([]int16, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, fault.InvalidArgument("no hay una grabación activa para detener")
	}
	r.recording = false
	drained := r.drained
	r.mu.Unlock()

	stopErr := r.src.Stop()
	<-drained

	r.mu.Lock()
	defer r.mu.Unlock()

	if stopErr != nil {
		r.frames = nil
		return nil, stopErr
	}

	total := 0
	for _, frame := range r.frames {
		total += len(frame)
	}
	if total == 0 {
		return nil, ErrEmptyAudio
	}

	samples := make([]int16, 0, total)
	for _, frame := range r.frames {
		samples = append(samples, frame...)
	}
	r.frames = nil
	return samples, nil
}

// UnavailableSource is the stub for builds/hosts without audio capture.
type UnavailableSource struct{}

func (UnavailableSource) Start() error {
	return fault.DependencyUnavailable("captura de audio")
}

func (UnavailableSource) Frames() <-chan []int16 {
	ch := make(chan []int16)
	close(ch)
	return ch
}

func (UnavailableSource) Stop() error { return nil }
