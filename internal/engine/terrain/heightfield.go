// Package terrain provides ground height lookup for the followed character.
package terrain

import (
	"errors"
	"fmt"
)

// Heightfield is a regular grid of ground heights sampled at cell corners.
// Heights[x][z] is the height at world (OriginX + x*CellSize, OriginZ + z*CellSize).
type Heightfield struct {
	OriginX  float32     `yaml:"origin_x"`
	OriginZ  float32     `yaml:"origin_z"`
	CellSize float32     `yaml:"cell_size"`
	Heights  [][]float32 `yaml:"heights"`
}

// Validate checks the grid is at least 2x2, rectangular and has a positive
// cell size.
func (h *Heightfield) Validate() error {
	if h.CellSize <= 0 {
		return fmt.Errorf("terrain: cell size must be positive, got %v", h.CellSize)
	}
	if len(h.Heights) < 2 {
		return errors.New("terrain: need at least 2 columns of heights")
	}
	rows := len(h.Heights[0])
	if rows < 2 {
		return errors.New("terrain: need at least 2 rows of heights")
	}
	for x, col := range h.Heights {
		if len(col) != rows {
			return fmt.Errorf("terrain: column %d has %d heights, want %d", x, len(col), rows)
		}
	}
	return nil
}

// GetHeight returns the bilinearly interpolated height at a world position.
// Positions outside the grid take the height of the nearest edge. A grid that
// fails Validate reads as 0 wherever its columns are too short.
func (h *Heightfield) GetHeight(worldX, worldZ float32) float32 {
	if h == nil || len(h.Heights) < 2 || len(h.Heights[0]) < 2 || h.CellSize <= 0 {
		return 0
	}
	tilesX := len(h.Heights)
	tilesZ := len(h.Heights[0])

	cellFX := clampf((worldX-h.OriginX)/h.CellSize, 0, float32(tilesX-1))
	cellFZ := clampf((worldZ-h.OriginZ)/h.CellSize, 0, float32(tilesZ-1))

	cellX := min(int(cellFX), tilesX-2)
	cellZ := min(int(cellFZ), tilesZ-2)

	// Fractional position within cell (0-1)
	fracX := cellFX - float32(cellX)
	fracZ := cellFZ - float32(cellZ)

	if len(h.Heights[cellX]) < cellZ+2 || len(h.Heights[cellX+1]) < cellZ+2 {
		return 0
	}

	sw := h.Heights[cellX][cellZ]
	se := h.Heights[cellX+1][cellZ]
	nw := h.Heights[cellX][cellZ+1]
	ne := h.Heights[cellX+1][cellZ+1]

	south := sw*(1-fracX) + se*fracX
	north := nw*(1-fracX) + ne*fracX
	return south*(1-fracZ) + north*fracZ
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
