package tracker

import (
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

func sortByDate(entries []models.HabitEntry) {
	storage.SortEntries(entries, storage.DateAsc)
}
