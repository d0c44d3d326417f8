package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/tbekele/cardparty-backend/models"
	"github.com/tbekele/cardparty-backend/utils/logger"
)

var (
	packs   []models.Pack
	packsMu sync.RWMutex
)

// LoadPacks loads the pack index from the given JSON file. The process
// must never serve lobbies against a broken or empty catalog, so any
// problem here is fatal.
func LoadPacks(path string) {
	if err := loadPacks(path); err != nil {
		logger.Fatalf("Failed to load pack index %s: %v", path, err)
	}
	logger.Infof("[Init] Loaded %d card packs", len(packs))
}

func loadPacks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var loaded []models.Pack
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("pack index is empty")
	}
	for i, p := range loaded {
		if p.Name == "" {
			return fmt.Errorf("pack %d has no name", i)
		}
		if len(p.White) == 0 && len(p.Black) == 0 {
			return fmt.Errorf("pack %q has no cards", p.Name)
		}
		for _, b := range p.Black {
			if b.Pick < 1 {
				return fmt.Errorf("pack %q: black card %q has pick %d", p.Name, b.Text, b.Pick)
			}
		}
	}

	packsMu.Lock()
	packs = loaded
	packsMu.Unlock()
	return nil
}

// ListPacks returns the catalog summary clients choose packs from.
func ListPacks() []models.PackInfo {
	packsMu.RLock()
	defer packsMu.RUnlock()

	out := make([]models.PackInfo, len(packs))
	for i, p := range packs {
		out[i] = models.PackInfo{
			ID:          i,
			Name:        p.Name,
			Official:    p.Official,
			Description: p.Description,
			WhiteCount:  len(p.White),
			BlackCount:  len(p.Black),
		}
	}
	return out
}

// GetPacks flattens the requested packs into white and black card pools,
// assigning each card a fresh session-unique id. An empty indexes slice
// means every pack.
func GetPacks(indexes []int) ([]models.WhiteCard, []models.BlackCard, error) {
	packsMu.RLock()
	defer packsMu.RUnlock()

	if len(indexes) == 0 {
		indexes = make([]int, len(packs))
		for i := range packs {
			indexes[i] = i
		}
	}

	var whites []models.WhiteCard
	var blacks []models.BlackCard
	for _, idx := range indexes {
		if idx < 0 || idx >= len(packs) {
			return nil, nil, fmt.Errorf("unknown pack id %d", idx)
		}
		p := packs[idx]
		for _, text := range p.White {
			whites = append(whites, models.WhiteCard{
				ID:   uuid.NewString(),
				Text: text,
				Pack: p.Name,
			})
		}
		for _, b := range p.Black {
			blacks = append(blacks, models.BlackCard{
				ID:   uuid.NewString(),
				Text: b.Text,
				Pick: b.Pick,
				Pack: p.Name,
			})
		}
	}
	return whites, blacks, nil
}
