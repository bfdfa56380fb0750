package designer

import (
	"testing"
	"time"

	"infinix-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sofa  = models.Product{ID: "sofa-1", Name: "Modern Leather Sofa"}
	table = models.Product{ID: "table-2", Name: "Modern Coffee Table"}
	chair = models.Product{ID: "chair-1", Name: "Ergonomic Office Chair"}
)

type sliceSink struct {
	designs []models.RoomDesign
}

func (s *sliceSink) Add(d models.RoomDesign) { s.designs = append(s.designs, d) }

func TestNewSession_StartsWithDefaultSnapshot(t *testing.T) {
	s := NewSession()

	assert.Equal(t, DefaultRoom(), s.Room())
	assert.Equal(t, 0, s.HistoryIndex())
	assert.Equal(t, 1, s.HistoryLen())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestGridPosition_WrapsAfterThreeColumns(t *testing.T) {
	assert.Equal(t, models.Vector3{X: -3, Y: 0.5, Z: -3}, GridPosition(0))
	assert.Equal(t, models.Vector3{X: 0, Y: 0.5, Z: -3}, GridPosition(1))
	assert.Equal(t, models.Vector3{X: 3, Y: 0.5, Z: -3}, GridPosition(2))
	assert.Equal(t, models.Vector3{X: -3, Y: 0.5, Z: 0}, GridPosition(3))
	assert.Equal(t, models.Vector3{X: 0, Y: 0.5, Z: 3}, GridPosition(7))
}

func TestAddFurniture_ThenUndoRestoresPreviousDocument(t *testing.T) {
	s := NewSession()
	before := s.Room()

	placed := s.AddFurniture(sofa)
	assert.Equal(t, "sofa-1", placed.ID)
	assert.Equal(t, 1.0, placed.Scale)
	assert.Equal(t, 1, s.HistoryIndex())

	require.True(t, s.Undo())
	assert.Equal(t, before, s.Room())
	assert.Equal(t, 0, s.HistoryIndex())
}

func TestUndo_AtFirstSnapshotIsNoop(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Undo())
	assert.Equal(t, 0, s.HistoryIndex())
	assert.Equal(t, DefaultRoom(), s.Room())
}

func TestRedo_AfterFreshAddIsNoop(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	room := s.Room()

	assert.False(t, s.Redo())
	assert.Equal(t, room, s.Room())
	assert.Equal(t, 1, s.HistoryIndex())
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	s.AddFurniture(table)
	full := s.Room()

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Empty(t, s.Room().Furniture)

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	assert.Equal(t, full, s.Room())
	assert.False(t, s.Redo())
}

func TestNewEditAfterUndoDiscardsRedoBranch(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	s.AddFurniture(table)
	require.True(t, s.Undo())

	s.AddFurniture(chair)
	assert.Equal(t, 3, s.HistoryLen())
	assert.Equal(t, 2, s.HistoryIndex())
	assert.False(t, s.CanRedo())

	room := s.Room()
	require.Len(t, room.Furniture, 2)
	assert.Equal(t, "sofa-1", room.Furniture[0].ID)
	assert.Equal(t, "chair-1", room.Furniture[1].ID)
}

func TestTransformEdits_AreNotRecorded(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	require.NoError(t, s.SelectFurniture(0))

	require.NoError(t, s.UpdatePosition("x", 4))
	require.NoError(t, s.UpdateRotation(1.57))
	require.NoError(t, s.UpdateScale(2))
	assert.Equal(t, 2, s.HistoryLen())
	assert.True(t, s.HasUnrecordedEdits())

	room := s.Room()
	assert.Equal(t, 4.0, room.Furniture[0].Position.X)
	assert.Equal(t, 1.57, room.Furniture[0].Rotation)
	assert.Equal(t, 2.0, room.Furniture[0].Scale)

	// undo jumps past the transform edits to the pre-add snapshot
	require.True(t, s.Undo())
	assert.Empty(t, s.Room().Furniture)
	assert.False(t, s.HasUnrecordedEdits())

	require.True(t, s.Redo())
	assert.Equal(t, GridPosition(0), s.Room().Furniture[0].Position)
}

func TestTransformEdits_RequireSelection(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)

	assert.ErrorIs(t, s.UpdatePosition("x", 1), ErrNothingSelected)
	assert.ErrorIs(t, s.UpdateRotation(1), ErrNothingSelected)
	assert.ErrorIs(t, s.UpdateScale(1), ErrNothingSelected)
	_, err := s.RemoveFurniture()
	assert.ErrorIs(t, err, ErrNothingSelected)

	assert.ErrorIs(t, s.SelectFurniture(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SelectFurniture(-1), ErrIndexOutOfRange)

	require.NoError(t, s.SelectFurniture(0))
	assert.ErrorIs(t, s.UpdatePosition("w", 1), ErrInvalidAxis)
}

func TestRemoveFurniture_RecordsAndDeselects(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	s.AddFurniture(table)
	require.NoError(t, s.SelectFurniture(0))

	removed, err := s.RemoveFurniture()
	require.NoError(t, err)
	assert.Equal(t, "sofa-1", removed.ID)
	_, selected := s.Selected()
	assert.False(t, selected)
	assert.Equal(t, 3, s.HistoryLen())

	room := s.Room()
	require.Len(t, room.Furniture, 1)
	assert.Equal(t, "table-2", room.Furniture[0].ID)

	require.True(t, s.Undo())
	assert.Len(t, s.Room().Furniture, 2)
}

func TestUndo_DropsSelectionThatNoLongerExists(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	s.AddFurniture(table)
	require.NoError(t, s.SelectFurniture(1))

	require.True(t, s.Undo())
	_, selected := s.Selected()
	assert.False(t, selected)
}

func TestSnapshotsAreIsolatedFromLiveDocument(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	require.NoError(t, s.SelectFurniture(0))
	require.NoError(t, s.UpdateScale(5))

	s.AddFurniture(table)
	require.True(t, s.Undo())
	assert.Equal(t, 1.0, s.Room().Furniture[0].Scale)

	room := s.Room()
	room.Furniture[0].Scale = 42
	assert.Equal(t, 1.0, s.Room().Furniture[0].Scale)
}

func TestHistoryLimit_KeepsIndexInRange(t *testing.T) {
	s := NewSession(WithHistoryLimit(3))
	for i := 0; i < 5; i++ {
		s.AddFurniture(sofa)
	}

	assert.Equal(t, 3, s.HistoryLen())
	assert.Equal(t, 2, s.HistoryIndex())

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.False(t, s.Undo())
	assert.Len(t, s.Room().Furniture, 3)
}

func TestRoomSettings(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.UpdateDimension("width", 12))
	assert.ErrorIs(t, s.UpdateDimension("depth", 1), ErrInvalidDimension)
	s.SetWallColor("#FFFFFF")
	s.SetFloorColor("#000000")

	room := s.Room()
	assert.Equal(t, 12.0, room.Dimensions.Width)
	assert.Equal(t, "#FFFFFF", room.WallColor)
	assert.Equal(t, "#000000", room.FloorColor)
	assert.True(t, s.HasUnrecordedEdits())
	assert.Equal(t, 1, s.HistoryLen())
}

func TestLoad_SeedsFreshHistory(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)

	s.Load(models.RoomData{
		Dimensions: models.Dimensions{Width: 12, Length: 12, Height: 9},
		Furniture:  []models.Placement{{ID: "chair-1", Scale: 1}},
	})

	assert.Equal(t, 0, s.HistoryIndex())
	assert.Equal(t, 1, s.HistoryLen())
	assert.Equal(t, 12.0, s.Room().Dimensions.Width)

	placed := s.AddFurniture(table)
	assert.Equal(t, GridPosition(1), placed.Position)
}

func TestSaveDesign(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(WithNow(func() time.Time { return now }), WithIDGenerator(func() string { return "design-x" }))
	s.AddFurniture(sofa)
	owner := &models.SessionUser{ID: "user-1", Name: "John Doe"}
	sink := &sliceSink{}

	_, err := s.SaveDesign("   ", owner, sink)
	assert.ErrorIs(t, err, ErrDesignNameRequired)
	_, err = s.SaveDesign("Den", nil, sink)
	assert.ErrorIs(t, err, ErrNoOwner)
	assert.Empty(t, sink.designs)

	design, err := s.SaveDesign("Den", owner, sink)
	require.NoError(t, err)
	assert.Equal(t, "design-x", design.ID)
	assert.Equal(t, "John Doe", design.UserName)
	assert.Equal(t, now, design.CreatedAt)
	require.Len(t, sink.designs, 1)

	require.NoError(t, s.SelectFurniture(0))
	require.NoError(t, s.UpdateScale(3))
	assert.Equal(t, 1.0, sink.designs[0].RoomData.Furniture[0].Scale, "saved design is a copy")
}

func TestScene_ReportsModelPathsAndSelection(t *testing.T) {
	s := NewSession()
	s.AddFurniture(sofa)
	s.AddFurniture(table)
	require.NoError(t, s.SelectFurniture(1))

	scene := s.Scene()
	assert.Equal(t, 15.0, scene.Width)
	assert.Equal(t, "#8B4513", scene.FloorColor)
	require.Len(t, scene.Furniture, 2)
	assert.Equal(t, "/3D/sofa-1.glb", scene.Furniture[0].ModelPath)
	assert.False(t, scene.Furniture[0].Selected)
	assert.True(t, scene.Furniture[1].Selected)
	require.NotNil(t, scene.SelectedIndex)
	assert.Equal(t, 1, *scene.SelectedIndex)

	s.ClearSelection()
	assert.Nil(t, s.Scene().SelectedIndex)
}

func TestSeedProduct_IsBaselineSnapshot(t *testing.T) {
	s := NewSession()
	s.SeedProduct(sofa)

	room := s.Room()
	require.Len(t, room.Furniture, 1)
	assert.Equal(t, GridPosition(0), room.Furniture[0].Position)
	assert.False(t, s.CanUndo())

	s.AddFurniture(table)
	require.True(t, s.Undo())
	assert.Len(t, s.Room().Furniture, 1)
}

func TestLoadDesign_CopiesRoomData(t *testing.T) {
	d := models.RoomDesign{ID: "design-1", RoomData: models.RoomData{
		Dimensions: models.Dimensions{Width: 12, Length: 12, Height: 9},
		WallColor:  "#E0E0E0",
		Furniture:  []models.Placement{{ID: "chair-1", Scale: 1}},
	}}

	s := NewSession()
	s.LoadDesign(d)
	d.RoomData.Furniture[0].ID = "changed"

	assert.Equal(t, "chair-1", s.Room().Furniture[0].ID)
	assert.Equal(t, 12.0, s.Room().Dimensions.Width)
}
