// Package storyviewer drives fullscreen story playback: a fixed per-story
// timer with tap navigation, independent of any rendering layer.
package storyviewer

import (
	"context"
	"sync"
	"time"

	"jm_store_backend/internal/models"
)

const (
	// StoryDuration is how long each story is shown before auto-advancing.
	StoryDuration = 5 * time.Second
	// TickInterval is the progress sampling period.
	TickInterval = 50 * time.Millisecond
)

// progressStep is the progress gained per tick; 100 steps cover one story.
const progressStep = float64(100) * float64(TickInterval) / float64(StoryDuration)

// Viewer plays a fixed sequence of stories. Navigation past the last story
// closes the viewer; navigating before the first is a no-op. The onClose
// callback fires exactly once no matter how the viewer ends.
type Viewer struct {
	mu       sync.Mutex
	stories  []models.Story
	index    int
	progress float64
	closed   bool
	onClose  func()

	stop chan struct{}
	done chan struct{}
}

func New(stories []models.Story, onClose func()) *Viewer {
	return &Viewer{
		stories: stories,
		onClose: onClose,
	}
}

// Current returns the story being shown, or nil once closed or when the
// viewer has nothing to play.
func (v *Viewer) Current() *models.Story {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.index >= len(v.stories) {
		return nil
	}
	story := v.stories[v.index]
	return &story
}

// Index returns the position of the story being shown.
func (v *Viewer) Index() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index
}

// Progress returns playback progress for the current story in [0, 100].
func (v *Viewer) Progress() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.progress
}

// Closed reports whether playback has ended.
func (v *Viewer) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Tick advances playback by one sampling interval. When the current story's
// progress reaches 100 it moves to the next story, or closes the viewer on
// the last one.
func (v *Viewer) Tick() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.progress += progressStep
	if v.progress >= 100 {
		v.advanceLocked()
	}
}

// TapRight skips to the next story, closing the viewer from the last one.
func (v *Viewer) TapRight() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.advanceLocked()
}

// TapLeft returns to the previous story. On the first story it does nothing;
// progress keeps running.
func (v *Viewer) TapLeft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if v.index > 0 {
		v.index--
		v.progress = 0
	}
}

// Close ends playback immediately.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked()
}

func (v *Viewer) advanceLocked() {
	if v.index+1 >= len(v.stories) {
		v.closeLocked()
		return
	}
	v.index++
	v.progress = 0
}

func (v *Viewer) closeLocked() {
	if v.closed {
		return
	}
	v.closed = true
	if v.onClose != nil {
		v.onClose()
	}
}

// Run drives playback on a real ticker until the viewer closes, the context
// is cancelled, or Stop is called.
func (v *Viewer) Run(ctx context.Context) {
	v.mu.Lock()
	if v.closed || len(v.stories) == 0 {
		v.closeLocked()
		v.mu.Unlock()
		return
	}
	v.stop = make(chan struct{})
	v.done = make(chan struct{})
	stop, done := v.stop, v.done
	v.mu.Unlock()

	defer close(done)
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			v.Close()
			return
		case <-stop:
			v.Close()
			return
		case <-ticker.C:
			v.Tick()
			if v.Closed() {
				return
			}
		}
	}
}

// Stop ends a running Run loop and waits for it to exit.
func (v *Viewer) Stop() {
	v.mu.Lock()
	stop, done := v.stop, v.done
	v.stop = nil
	v.mu.Unlock()
	if stop == nil {
		v.Close()
		return
	}
	close(stop)
	<-done
}
