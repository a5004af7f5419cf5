package views

import "servicehub/models"

// CategoryTile is one cell of the "Browse Services" grid.
type CategoryTile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func CategoryGrid(categories []models.ServiceCategory) []CategoryTile {
	tiles := make([]CategoryTile, 0, len(categories))
	for _, c := range categories {
		tiles = append(tiles, CategoryTile{ID: c.ID, Name: c.Name, Icon: c.Icon, Description: c.Description})
	}
	return tiles
}
