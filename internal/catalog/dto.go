package catalog

import (
	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
)

type FishDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SeasonDTO struct {
	ID   int              `json:"id"`
	Code enums.SeasonCode `json:"code"`
	Name string           `json:"name"`
}

func FishFromModels(rows []models.Fish) []FishDTO {
	out := make([]FishDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FishDTO{ID: row.ID, Name: row.Name})
	}
	return out
}

func SeasonsFromModels(rows []models.Season) []SeasonDTO {
	out := make([]SeasonDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, SeasonDTO{ID: row.ID, Code: row.Code, Name: row.Name})
	}
	return out
}
