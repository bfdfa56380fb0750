package handlers

import (
	"net/http"

	"infinix-store/internal/designer"
	"infinix-store/internal/models"
	"infinix-store/internal/storefront"

	"github.com/rs/zerolog"
)

type DesignerState struct {
	Room         models.RoomData `json:"room"`
	Selected     *int            `json:"selected,omitempty"`
	HistoryIndex int             `json:"history_index"`
	HistoryLen   int             `json:"history_len"`
	CanUndo      bool            `json:"can_undo"`
	CanRedo      bool            `json:"can_redo"`
	Dirty        bool            `json:"dirty"`
}

func designerState(s *designer.Session) DesignerState {
	state := DesignerState{
		Room:         s.Room(),
		HistoryIndex: s.HistoryIndex(),
		HistoryLen:   s.HistoryLen(),
		CanUndo:      s.CanUndo(),
		CanRedo:      s.CanRedo(),
		Dirty:        s.HasUnrecordedEdits(),
	}
	if idx, ok := s.Selected(); ok {
		state.Selected = &idx
	}
	return state
}

type DesignerHandler struct {
	logger zerolog.Logger
}

func NewDesignerHandler(logger zerolog.Logger) *DesignerHandler {
	return &DesignerHandler{logger: logger}
}

func (h *DesignerHandler) edit(w http.ResponseWriter, r *http.Request, fn func(c *storefront.Client) error) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var state DesignerState
	err := client.Do(func() error {
		if err := fn(client); err != nil {
			return err
		}
		state = designerState(client.Designer.Session())
		return nil
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

func (h *DesignerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(*storefront.Client) error { return nil })
}

func (h *DesignerHandler) Scene(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var scene designer.Scene
	_ = client.Do(func() error {
		scene = client.Designer.Session().Scene()
		return nil
	})

	respondWithJSON(w, http.StatusOK, scene)
}

// Reset opens a fresh room, optionally from ?design= or seeded with ?product=.
func (h *DesignerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.edit(w, r, func(c *storefront.Client) error {
		return c.Designer.Open(q.Get("product"), q.Get("design"))
	})
}

func (h *DesignerHandler) AddFurniture(w http.ResponseWriter, r *http.Request) {
	var req models.AddFurnitureRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		_, err := c.Designer.AddFurniture(req.ProductID)
		return err
	})
}

// Select sets the editing target; a negative index clears it.
func (h *DesignerHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req models.SelectFurnitureRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		if req.Index < 0 {
			c.Designer.Session().ClearSelection()
			return nil
		}
		return c.Designer.Session().SelectFurniture(req.Index)
	})
}

func (h *DesignerHandler) RemoveSelected(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *storefront.Client) error {
		_, err := c.Designer.Session().RemoveFurniture()
		return err
	})
}

func (h *DesignerHandler) Position(w http.ResponseWriter, r *http.Request) {
	var req models.PositionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		return c.Designer.Session().UpdatePosition(req.Axis, req.Value)
	})
}

func (h *DesignerHandler) Rotation(w http.ResponseWriter, r *http.Request) {
	var req models.ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		return c.Designer.Session().UpdateRotation(req.Value)
	})
}

func (h *DesignerHandler) Scale(w http.ResponseWriter, r *http.Request) {
	var req models.ValueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		return c.Designer.Session().UpdateScale(req.Value)
	})
}

func (h *DesignerHandler) Room(w http.ResponseWriter, r *http.Request) {
	var req models.RoomSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.edit(w, r, func(c *storefront.Client) error {
		s := c.Designer.Session()
		if req.Dimension != "" {
			if req.Value == nil {
				return designer.ErrInvalidDimension
			}
			if err := s.UpdateDimension(req.Dimension, *req.Value); err != nil {
				return err
			}
		}
		if req.Dimensions != nil {
			s.SetDimensions(*req.Dimensions)
		}
		if req.WallColor != "" {
			s.SetWallColor(req.WallColor)
		}
		if req.FloorColor != "" {
			s.SetFloorColor(req.FloorColor)
		}
		return nil
	})
}

func (h *DesignerHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *storefront.Client) error {
		c.Designer.Session().Undo()
		return nil
	})
}

func (h *DesignerHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *storefront.Client) error {
		c.Designer.Session().Redo()
		return nil
	})
}

func (h *DesignerHandler) Save(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req models.SaveDesignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	var design models.RoomDesign
	err := client.Do(func() (err error) {
		design, err = client.Designer.Save(req.Name)
		return err
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, design)
}
