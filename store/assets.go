package store

import (
	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
)

type AssetStore struct {
	*ListStore[models.Asset, models.AssetInput, models.AssetPatch, AssetTotals]
}

func NewAssetStore(api client.API) *AssetStore {
	return &AssetStore{NewListStore[models.Asset, models.AssetInput, models.AssetPatch](api, Resource[models.Asset, AssetTotals]{
		Name:   "assets",
		Path:   "/api/assets",
		ID:     func(a models.Asset) string { return a.ID },
		Totals: assetTotals,
	})}
}

// Allocation returns current value per asset type.
func (s *AssetStore) Allocation() map[models.AssetType]float64 {
	grouped := map[models.AssetType][]models.Asset{}
	for _, a := range s.Items() {
		grouped[a.AssetType] = append(grouped[a.AssetType], a)
	}
	out := make(map[models.AssetType]float64, len(grouped))
	for t, as := range grouped {
		out[t] = TotalAssetsValue(as)
	}
	return out
}
