// Package staging holds a locally selected media file between selection and
// confirm/cancel, decoding it into a transmissible data URI.
package staging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/wire"
)

// ErrUnsupportedFile is returned for files that are neither image nor video.
var ErrUnsupportedFile = errors.New("not an image or video file")

// ErrNothingStaged is returned by Confirm when no decode has completed.
var ErrNothingStaged = errors.New("nothing staged")

// Staged is a decoded attachment awaiting confirm or cancel.
type Staged struct {
	ID         string // stage tag, for log correlation
	Kind       string // wire.TypeImage or wire.TypeVideo
	Data       string // data URI, inline-displayable and transmissible
	SourcePath string
	FileName   string
	SizeBytes  int64
}

// Notifier surfaces staging failures to the local user.
type Notifier interface {
	Error(text string)
}

// Stager stages at most one attachment at a time. Selecting a new file
// silently discards the previous stage; an in-flight decode whose stage was
// superseded or canceled is discarded when it completes (generation guard,
// last-selection-wins).
type Stager struct {
	mu     sync.Mutex
	gen    uint64
	staged *Staged

	notifier Notifier
	bus      *bus.Bus
	logger   *zap.Logger
}

// NewStager creates an empty stager.
func NewStager(notifier Notifier, b *bus.Bus, logger *zap.Logger) *Stager {
	return &Stager{
		notifier: notifier,
		bus:      b,
		logger:   logger,
	}
}

// Stage selects a file for staging. The declared media type (by extension)
// must be image/* or video/*; anything else is rejected with a notice and
// leaves nothing staged. Accepted files decode asynchronously; the stage is
// pending until a staging.ready event fires.
func (s *Stager) Stage(path string) error {
	kind, mimeType, err := classify(path)
	if err != nil {
		s.mu.Lock()
		s.gen++
		s.staged = nil
		s.mu.Unlock()

		s.notifier.Error("Please select an image or video file")
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.staged = nil // previous stage discarded silently
	s.mu.Unlock()

	stageID := uuid.NewString()
	if s.logger != nil {
		s.logger.Info("staging attachment",
			zap.String("stage_id", stageID),
			zap.String("file", filepath.Base(path)),
			zap.String("kind", kind))
	}

	go s.decode(gen, stageID, path, kind, mimeType)
	return nil
}

func (s *Stager) decode(gen uint64, stageID, path, kind, mimeType string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.mu.Lock()
		stale := s.gen != gen
		s.mu.Unlock()
		if stale {
			return
		}
		if s.logger != nil {
			s.logger.Warn("attachment decode failed", zap.String("stage_id", stageID), zap.Error(err))
		}
		s.notifier.Error("Error reading file")
		s.publish(bus.KindStagingFailed, stageID)
		return
	}

	staged := &Staged{
		ID:         stageID,
		Kind:       kind,
		Data:       fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		SourcePath: path,
		FileName:   filepath.Base(path),
		SizeBytes:  int64(len(data)),
	}

	s.mu.Lock()
	if s.gen != gen {
		// Superseded or canceled while decoding.
		s.mu.Unlock()
		return
	}
	s.staged = staged
	s.mu.Unlock()

	s.publish(bus.KindStagingReady, *staged)
}

// Staged returns a copy of the ready attachment, or nil while none is
// staged or a decode is still pending.
func (s *Stager) Staged() *Staged {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return nil
	}
	c := *s.staged
	return &c
}

// Confirm returns the staged attachment and clears the stage. The caller
// hands the result to the message pipeline; exactly one message comes out of
// one confirm.
func (s *Stager) Confirm() (*Staged, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return nil, ErrNothingStaged
	}
	staged := s.staged
	s.staged = nil
	s.gen++
	return staged, nil
}

// Cancel clears the stage and invalidates any in-flight decode. Dismissing
// the staging surface goes through here too.
func (s *Stager) Cancel() {
	s.mu.Lock()
	hadStage := s.staged != nil
	s.staged = nil
	s.gen++
	s.mu.Unlock()

	if hadStage {
		s.publish(bus.KindStagingCleared, nil)
	}
}

func (s *Stager) publish(kind string, payload any) {
	if s.bus != nil {
		s.bus.Publish(bus.Now(kind, payload))
	}
}

// classify maps a file's extension to an attachment kind and MIME type.
func classify(path string) (kind, mimeType string, err error) {
	mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return wire.TypeImage, mimeType, nil
	case strings.HasPrefix(mimeType, "video/"):
		return wire.TypeVideo, mimeType, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
}
