package staging

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

type recordingNotifier struct {
	errors []string
}

func (n *recordingNotifier) Error(text string) { n.errors = append(n.errors, text) }

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitEvent(t *testing.T, ch <-chan bus.Event) bus.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for staging event")
		return bus.Event{}
	}
}

func TestStageImageProducesDataURI(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 4)
	defer cancel()

	content := []byte("fake png bytes")
	path := writeTempFile(t, "photo.png", content)

	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(path); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	ev := waitEvent(t, events)
	if ev.Kind != bus.KindStagingReady {
		t.Fatalf("kind = %q, want %q", ev.Kind, bus.KindStagingReady)
	}

	staged := s.Staged()
	if staged == nil {
		t.Fatal("nothing staged after ready event")
	}
	if staged.Kind != wire.TypeImage {
		t.Errorf("kind = %q, want %q", staged.Kind, wire.TypeImage)
	}
	if staged.FileName != "photo.png" {
		t.Errorf("file name = %q", staged.FileName)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)
	if staged.Data != want {
		t.Errorf("data URI = %q, want %q", staged.Data, want)
	}
}

func TestStageVideoClassified(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 4)
	defer cancel()

	path := writeTempFile(t, "clip.mp4", []byte("fake mp4"))
	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(path); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	waitEvent(t, events)

	staged := s.Staged()
	if staged == nil || staged.Kind != wire.TypeVideo {
		t.Fatalf("staged = %+v, want video kind", staged)
	}
}

func TestStageRejectsUnsupportedFile(t *testing.T) {
	notifier := &recordingNotifier{}
	path := writeTempFile(t, "notes.txt", []byte("plain text"))

	s := NewStager(notifier, bus.New(), nil)
	err := s.Stage(path)
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("err = %v, want ErrUnsupportedFile", err)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Please select an image or video file" {
		t.Errorf("notices = %v", notifier.errors)
	}
	if s.Staged() != nil {
		t.Error("rejected file must leave nothing staged")
	}
}

func TestStageUnreadableFileNotifies(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 4)
	defer cancel()

	notifier := &recordingNotifier{}
	s := NewStager(notifier, b, nil)
	missing := filepath.Join(t.TempDir(), "gone.png")
	if err := s.Stage(missing); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	ev := waitEvent(t, events)
	if ev.Kind != bus.KindStagingFailed {
		t.Fatalf("kind = %q, want %q", ev.Kind, bus.KindStagingFailed)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Error reading file" {
		t.Errorf("notices = %v", notifier.errors)
	}
	if s.Staged() != nil {
		t.Error("failed decode must leave nothing staged")
	}
}

func TestRestagingSupersedesPrevious(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 8)
	defer cancel()

	first := writeTempFile(t, "first.png", []byte("first"))
	second := writeTempFile(t, "second.jpg", []byte("second"))

	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(first); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, events)
	if err := s.Stage(second); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, events)

	staged := s.Staged()
	if staged == nil || staged.FileName != "second.jpg" {
		t.Fatalf("staged = %+v, want second.jpg", staged)
	}
}

func TestConfirmReturnsAndClears(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 4)
	defer cancel()

	path := writeTempFile(t, "pic.gif", []byte("gif"))
	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(path); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, events)

	staged, err := s.Confirm()
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if staged.FileName != "pic.gif" {
		t.Errorf("file name = %q", staged.FileName)
	}
	if _, err := s.Confirm(); !errors.Is(err, ErrNothingStaged) {
		t.Errorf("second Confirm err = %v, want ErrNothingStaged", err)
	}
}

func TestCancelClearsStage(t *testing.T) {
	b := bus.New()
	events, cancel := b.Subscribe("staging.", 4)
	defer cancel()

	path := writeTempFile(t, "pic.png", []byte("png"))
	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(path); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, events)

	s.Cancel()
	ev := waitEvent(t, events)
	if ev.Kind != bus.KindStagingCleared {
		t.Fatalf("kind = %q, want %q", ev.Kind, bus.KindStagingCleared)
	}
	if s.Staged() != nil {
		t.Error("stage survived cancel")
	}
	if _, err := s.Confirm(); !errors.Is(err, ErrNothingStaged) {
		t.Errorf("Confirm after cancel err = %v", err)
	}
}

func TestCancelInvalidatesInFlightDecode(t *testing.T) {
	// Cancel bumps the generation before Stage's goroutine finishes; a
	// stale decode must not resurrect the stage. Simulate by staging and
	// canceling immediately, then waiting out the decode.
	b := bus.New()
	path := writeTempFile(t, "pic.png", []byte("png"))
	s := NewStager(&recordingNotifier{}, b, nil)
	if err := s.Stage(path); err != nil {
		t.Fatal(err)
	}
	s.Cancel()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.Staged() != nil {
			t.Fatal("stale decode resurrected the stage")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClassifyCaseInsensitiveExtension(t *testing.T) {
	kind, mimeType, err := classify("/tmp/PHOTO.PNG")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if kind != wire.TypeImage || !strings.HasPrefix(mimeType, "image/") {
		t.Errorf("kind = %q, mime = %q", kind, mimeType)
	}
}
