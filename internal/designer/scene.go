package designer

import "infinix-store/internal/models"

const modelDir = "/3D/"

// ModelPath is where the renderer finds the visual asset of a product.
func ModelPath(productID string) string {
	return modelDir + productID + ".glb"
}

type SceneItem struct {
	Index     int            `json:"index"`
	ProductID string         `json:"product_id"`
	Name      string         `json:"name,omitempty"`
	ModelPath string         `json:"model_path"`
	Position  models.Vector3 `json:"position"`
	Rotation  float64        `json:"rotation"`
	Scale     float64        `json:"scale"`
	Selected  bool           `json:"selected"`
}

// Scene is what the external renderer consumes. Clicks come back through SelectFurniture.
type Scene struct {
	Width         float64     `json:"width"`
	Length        float64     `json:"length"`
	Height        float64     `json:"height"`
	WallColor     string      `json:"wall_color"`
	FloorColor    string      `json:"floor_color"`
	Furniture     []SceneItem `json:"furniture"`
	SelectedIndex *int        `json:"selected_index,omitempty"`
}

func (s *Session) Scene() Scene {
	scene := Scene{
		Width:      s.room.Dimensions.Width,
		Length:     s.room.Dimensions.Length,
		Height:     s.room.Dimensions.Height,
		WallColor:  s.room.WallColor,
		FloorColor: s.room.FloorColor,
		Furniture:  make([]SceneItem, 0, len(s.room.Furniture)),
	}
	for i, f := range s.room.Furniture {
		scene.Furniture = append(scene.Furniture, SceneItem{
			Index:     i,
			ProductID: f.ID,
			Name:      f.Name,
			ModelPath: ModelPath(f.ID),
			Position:  f.Position,
			Rotation:  f.Rotation,
			Scale:     f.Scale,
			Selected:  i == s.selected,
		})
	}
	if idx, ok := s.Selected(); ok {
		scene.SelectedIndex = &idx
	}
	return scene
}
