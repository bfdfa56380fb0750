// Package designer holds the room designer session: the editable room
// document, the active selection and a linear undo/redo history of full
// document snapshots.
//
// Only structural edits (adding or removing furniture) record a snapshot.
// Transform edits and room settings change the live document without one,
// so undo cannot revert them; HasUnrecordedEdits reports that state.
//
// A Session is not safe for concurrent use.
package designer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"infinix-store/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNothingSelected    = errors.New("no furniture selected")
	ErrIndexOutOfRange    = errors.New("furniture index out of range")
	ErrInvalidAxis        = errors.New("axis must be x, y or z")
	ErrInvalidDimension   = errors.New("dimension must be width, length or height")
	ErrDesignNameRequired = errors.New("design name is required")
	ErrNoOwner            = errors.New("a signed in user is required to save designs")
)

const (
	DefaultHistoryLimit = 100
	DefaultThumbnail    = "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg"

	gridColumns = 3
	gridSpacing = 3.0
	gridOrigin  = -3.0
	floorOffset = 0.5
)

func DefaultRoom() models.RoomData {
	return models.RoomData{
		Dimensions: models.Dimensions{Width: 15, Length: 20, Height: 10},
		WallColor:  "#F5F5F5",
		FloorColor: "#8B4513",
		Furniture:  []models.Placement{},
	}
}

// GridPosition is where the n-th placed item lands: three columns, rows growing along z.
func GridPosition(n int) models.Vector3 {
	return models.Vector3{
		X: float64(n%gridColumns)*gridSpacing + gridOrigin,
		Y: floorOffset,
		Z: float64(n/gridColumns)*gridSpacing + gridOrigin,
	}
}

// DesignSink receives saved designs.
type DesignSink interface {
	Add(d models.RoomDesign)
}

type Session struct {
	room     models.RoomData
	history  []models.RoomData
	index    int
	selected int
	dirty    bool

	limit  int
	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
}

type Option func(*Session)

func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Session) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		index:    -1,
		selected: -1,
		limit:    DefaultHistoryLimit,
		now:      time.Now,
		newID:    func() string { return "design-" + uuid.NewString() },
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(DefaultRoom())
	return s
}

// Load replaces the document and starts a fresh history whose only snapshot is room.
func (s *Session) Load(room models.RoomData) {
	if room.Furniture == nil {
		room.Furniture = []models.Placement{}
	}
	s.room = room.Clone()
	s.history = nil
	s.index = -1
	s.selected = -1
	s.record()
}

func (s *Session) Reset() {
	s.Load(DefaultRoom())
}

// LoadDesign opens a saved design for editing.
func (s *Session) LoadDesign(d models.RoomDesign) {
	s.Load(d.RoomData)
}

// SeedProduct starts a default room holding only p. The seeded room is the first snapshot.
func (s *Session) SeedProduct(p models.Product) {
	room := DefaultRoom()
	room.Furniture = append(room.Furniture, placementFor(p, 0))
	s.Load(room)
}

func (s *Session) Room() models.RoomData {
	return s.room.Clone()
}

func (s *Session) HistoryIndex() int { return s.index }
func (s *Session) HistoryLen() int   { return len(s.history) }
func (s *Session) CanUndo() bool     { return s.index > 0 }
func (s *Session) CanRedo() bool     { return s.index < len(s.history)-1 }

// HasUnrecordedEdits reports edits applied since the last snapshot that undo cannot revert.
func (s *Session) HasUnrecordedEdits() bool { return s.dirty }

func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// record drops any redo branch and appends a snapshot of the live document.
func (s *Session) record() {
	s.history = append(s.history[:s.index+1], s.room.Clone())
	s.index = len(s.history) - 1
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append([]models.RoomData(nil), s.history[over:]...)
		s.index -= over
	}
	s.dirty = false
}

func placementFor(p models.Product, n int) models.Placement {
	return models.Placement{
		ID:       p.ID,
		Name:     p.Name,
		Position: GridPosition(n),
		Rotation: 0,
		Scale:    1,
	}
}

func (s *Session) AddFurniture(p models.Product) models.Placement {
	placement := placementFor(p, len(s.room.Furniture))
	s.room.Furniture = append(s.room.Furniture, placement)
	s.record()

	s.logger.Debug().Str("product_id", p.ID).Int("count", len(s.room.Furniture)).Msg("Furniture added")
	return placement
}

// SelectFurniture sets the editing target. It is also the renderer's click callback.
func (s *Session) SelectFurniture(index int) error {
	if index < 0 || index >= len(s.room.Furniture) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.selected = index
	return nil
}

func (s *Session) ClearSelection() {
	s.selected = -1
}

func (s *Session) target() (*models.Placement, error) {
	if s.selected < 0 || s.selected >= len(s.room.Furniture) {
		return nil, ErrNothingSelected
	}
	return &s.room.Furniture[s.selected], nil
}

func (s *Session) UpdatePosition(axis string, value float64) error {
	t, err := s.target()
	if err != nil {
		return err
	}
	switch axis {
	case "x":
		t.Position.X = value
	case "y":
		t.Position.Y = value
	case "z":
		t.Position.Z = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
	}
	s.dirty = true
	return nil
}

// UpdateRotation sets the rotation in radians.
func (s *Session) UpdateRotation(value float64) error {
	t, err := s.target()
	if err != nil {
		return err
	}
	t.Rotation = value
	s.dirty = true
	return nil
}

func (s *Session) UpdateScale(value float64) error {
	t, err := s.target()
	if err != nil {
		return err
	}
	t.Scale = value
	s.dirty = true
	return nil
}

// RemoveFurniture removes the selected item, records a snapshot and deselects.
func (s *Session) RemoveFurniture() (models.Placement, error) {
	t, err := s.target()
	if err != nil {
		return models.Placement{}, err
	}
	removed := *t

	furniture := make([]models.Placement, 0, len(s.room.Furniture)-1)
	furniture = append(furniture, s.room.Furniture[:s.selected]...)
	furniture = append(furniture, s.room.Furniture[s.selected+1:]...)
	s.room.Furniture = furniture
	s.selected = -1
	s.record()

	s.logger.Debug().Str("product_id", removed.ID).Msg("Furniture removed")
	return removed, nil
}

func (s *Session) UpdateDimension(name string, value float64) error {
	switch name {
	case "width":
		s.room.Dimensions.Width = value
	case "length":
		s.room.Dimensions.Length = value
	case "height":
		s.room.Dimensions.Height = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDimension, name)
	}
	s.dirty = true
	return nil
}

func (s *Session) SetDimensions(d models.Dimensions) {
	s.room.Dimensions = d
	s.dirty = true
}

func (s *Session) SetWallColor(color string) {
	s.room.WallColor = color
	s.dirty = true
}

func (s *Session) SetFloorColor(color string) {
	s.room.FloorColor = color
	s.dirty = true
}

// Undo restores the previous snapshot. It reports false when there is none.
func (s *Session) Undo() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	s.restore()
	return true
}

// Redo moves forward again after Undo. It reports false at the tail of the history.
func (s *Session) Redo() bool {
	if s.index >= len(s.history)-1 {
		return false
	}
	s.index++
	s.restore()
	return true
}

func (s *Session) restore() {
	s.room = s.history[s.index].Clone()
	s.dirty = false
	if s.selected >= len(s.room.Furniture) {
		s.selected = -1
	}
}

// SaveDesign builds a design from the live document and hands it to sink.
func (s *Session) SaveDesign(name string, owner *models.SessionUser, sink DesignSink) (models.RoomDesign, error) {
	if strings.TrimSpace(name) == "" {
		return models.RoomDesign{}, ErrDesignNameRequired
	}
	if owner == nil {
		return models.RoomDesign{}, ErrNoOwner
	}

	now := s.now()
	design := models.RoomDesign{
		ID:        s.newID(),
		UserID:    owner.ID,
		UserName:  owner.Name,
		Name:      name,
		Thumbnail: DefaultThumbnail,
		RoomData:  s.room.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	sink.Add(design)

	s.logger.Info().Str("design_id", design.ID).Str("user_id", owner.ID).Msg("Design saved")
	return design, nil
}
