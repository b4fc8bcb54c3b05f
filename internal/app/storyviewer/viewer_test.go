package storyviewer

import (
	"context"
	"testing"

	"jm_store_backend/internal/models"
)

func stories(n int) []models.Story {
	out := make([]models.Story, n)
	for i := range out {
		out[i] = models.Story{ID: string(rune('a' + i)), Kind: models.StoryKindImage}
	}
	return out
}

// ticksPerStory is how many sampling intervals one story lasts.
const ticksPerStory = int(StoryDuration / TickInterval)

func TestTickAdvancesAfterFullDuration(t *testing.T) {
	v := New(stories(3), nil)

	for i := 0; i < ticksPerStory-1; i++ {
		v.Tick()
	}
	if v.Index() != 0 {
		t.Fatalf("advanced too early at tick %d", ticksPerStory-1)
	}
	v.Tick()
	if v.Index() != 1 {
		t.Fatalf("expected index 1 after %d ticks, got %d", ticksPerStory, v.Index())
	}
	if v.Progress() != 0 {
		t.Fatalf("progress should reset on advance, got %v", v.Progress())
	}
}

func TestTapRightAdvancesAndClosesOnLast(t *testing.T) {
	closed := 0
	v := New(stories(2), func() { closed++ })

	v.TapRight()
	if v.Index() != 1 || v.Closed() {
		t.Fatalf("after first tap: index=%d closed=%v", v.Index(), v.Closed())
	}
	v.TapRight()
	if !v.Closed() {
		t.Fatal("tapping past the last story should close the viewer")
	}
	if closed != 1 {
		t.Fatalf("close callback fired %d times", closed)
	}
}

func TestTapLeftOnFirstStoryIsNoop(t *testing.T) {
	v := New(stories(2), nil)

	for i := 0; i < ticksPerStory/2; i++ {
		v.Tick()
	}
	before := v.Progress()
	if before == 0 {
		t.Fatal("setup: expected some progress")
	}

	v.TapLeft()
	if v.Index() != 0 {
		t.Fatalf("tap-left on the first story must not move the index, got %d", v.Index())
	}
	if got := v.Progress(); got != before {
		t.Fatalf("tap-left on the first story must not touch progress: before=%v after=%v", before, got)
	}
}

func TestTapLeftGoesBack(t *testing.T) {
	v := New(stories(3), nil)
	v.TapRight()
	v.TapRight()
	if v.Index() != 2 {
		t.Fatalf("setup: expected index 2, got %d", v.Index())
	}
	v.TapLeft()
	if v.Index() != 1 {
		t.Fatalf("expected index 1 after tap-left, got %d", v.Index())
	}
}

func TestCloseCallbackFiresExactlyOnce(t *testing.T) {
	closed := 0
	v := New(stories(1), func() { closed++ })

	v.TapRight() // closes
	v.Close()
	v.TapRight()
	v.Tick()

	if closed != 1 {
		t.Fatalf("close callback fired %d times, want 1", closed)
	}
}

func TestTickingThroughAllStoriesCloses(t *testing.T) {
	closed := 0
	v := New(stories(2), func() { closed++ })

	for i := 0; i < 2*ticksPerStory; i++ {
		v.Tick()
	}
	if !v.Closed() {
		t.Fatal("viewer should close after playing every story")
	}
	if closed != 1 {
		t.Fatalf("close callback fired %d times, want 1", closed)
	}
	if v.Current() != nil {
		t.Fatal("Current should be nil once closed")
	}
}

func TestEmptyViewerClosesImmediatelyOnRun(t *testing.T) {
	closed := 0
	v := New(nil, func() { closed++ })
	v.Run(context.Background())
	if !v.Closed() || closed != 1 {
		t.Fatalf("empty viewer: closed=%v callbacks=%d", v.Closed(), closed)
	}
}
