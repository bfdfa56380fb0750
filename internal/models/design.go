package models

import "time"

type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Length float64 `json:"length" yaml:"length"`
	Height float64 `json:"height" yaml:"height"`
}

type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Placement is one piece of furniture inside a room. ID references a product.
type Placement struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Position Vector3 `json:"position" yaml:"position"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
	Scale    float64 `json:"scale" yaml:"scale"`
}

type RoomData struct {
	Dimensions Dimensions  `json:"dimensions" yaml:"dimensions"`
	WallColor  string      `json:"wall_color" yaml:"wall_color"`
	FloorColor string      `json:"floor_color" yaml:"floor_color"`
	Furniture  []Placement `json:"furniture" yaml:"furniture"`
}

// Clone returns a deep copy; placements hold no pointers so copying the slice suffices.
func (r RoomData) Clone() RoomData {
	r.Furniture = append([]Placement{}, r.Furniture...)
	return r
}

type RoomDesign struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	UserName  string    `json:"user_name" yaml:"user_name"`
	Name      string    `json:"name" yaml:"name"`
	Thumbnail string    `json:"thumbnail" yaml:"thumbnail"`
	RoomData  RoomData  `json:"room_data" yaml:"room_data"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func (d RoomDesign) Clone() RoomDesign {
	d.RoomData = d.RoomData.Clone()
	return d
}

type AddFurnitureRequest struct {
	ProductID string `json:"product_id"`
}

type SelectFurnitureRequest struct {
	Index int `json:"index"`
}

type PositionRequest struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

type ValueRequest struct {
	Value float64 `json:"value"`
}

// RoomSettingsRequest changes any subset of the room settings. Dimension and Value
// set a single dimension by name.
type RoomSettingsRequest struct {
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Dimension  string      `json:"dimension,omitempty"`
	Value      *float64    `json:"value,omitempty"`
	WallColor  string      `json:"wall_color,omitempty"`
	FloorColor string      `json:"floor_color,omitempty"`
}

type SaveDesignRequest struct {
	Name string `json:"name"`
}
