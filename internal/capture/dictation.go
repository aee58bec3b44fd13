package capture

import "sync"

// Phase is the dictation session state.
type Phase int

const (
	// Idle means no recognition is running.
	Idle Phase = iota
	// Listening means the recognizer is active; natural ends restart it so
	// dictation is continuous.
	Listening
	// StoppingIntentionally means Stop was called and the recognizer's
	// asynchronous end event has not arrived yet. An end received in this
	// phase must not restart recognition.
	StoppingIntentionally
)

// Recognizer is the speech-recognition engine port. The engine itself is an
// external collaborator; it reports results and lifecycle events back into
// the session.
type Recognizer interface {
	Start() error
	Stop()
}

// Dictation drives a Recognizer through the continuous-capture state
// machine. The recognizer's end event fires both when speech pauses
// naturally and, asynchronously, after an intentional Stop; the phase
// distinguishes the two so a late end never restarts a stopped session.
type Dictation struct {
	mu    sync.Mutex
	phase Phase
	rec   Recognizer

	base string // text present before dictation started
	text string // base plus the accumulated transcript

	onText func(string)
}

// NewDictation creates a session. onText receives the combined text after
// every recognition result; it may be nil.
func NewDictation(rec Recognizer, onText func(string)) *Dictation {
	return &Dictation{rec: rec, onText: onText}
}

// Start begins capture, rebasing the transcript onto currentText. Starting a
// session that is not idle is a no-op.
func (d *Dictation) Start(currentText string) error {
	d.mu.Lock()
	if d.phase != Idle {
		d.mu.Unlock()
		return nil
	}
	d.base = currentText
	d.text = currentText
	d.phase = Listening
	d.mu.Unlock()

	if err := d.rec.Start(); err != nil {
		d.mu.Lock()
		d.phase = Idle
		d.mu.Unlock()
		return err
	}
	return nil
}

// Stop ends capture intentionally. The session stays in
// StoppingIntentionally until the recognizer delivers its end event.
func (d *Dictation) Stop() {
	d.mu.Lock()
	if d.phase != Listening {
		d.mu.Unlock()
		return
	}
	d.phase = StoppingIntentionally
	d.mu.Unlock()

	d.rec.Stop()
}

// Result receives the full transcript recognized so far and publishes the
// rebased text. Results outside the Listening phase are dropped.
func (d *Dictation) Result(transcript string) {
	d.mu.Lock()
	if d.phase != Listening {
		d.mu.Unlock()
		return
	}
	d.text = d.base + transcript
	text := d.text
	cb := d.onText
	d.mu.Unlock()

	if cb != nil {
		cb(text)
	}
}

// RecognitionError handles an engine error. Transient codes keep the session
// alive; anything else stops it.
func (d *Dictation) RecognitionError(code string) {
	if code == "no-speech" || code == "aborted" {
		return
	}
	d.Stop()
}

// Ended handles the recognizer's end event. A natural end while listening
// restarts the engine to keep capture continuous; an end after an
// intentional Stop settles the session to Idle.
func (d *Dictation) Ended() {
	d.mu.Lock()
	if d.phase == Listening {
		d.mu.Unlock()
		if err := d.rec.Start(); err != nil {
			d.mu.Lock()
			d.phase = Idle
			d.mu.Unlock()
		}
		return
	}
	d.phase = Idle
	d.mu.Unlock()
}

// Phase returns the current session phase.
func (d *Dictation) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Text returns the current combined text.
func (d *Dictation) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}
