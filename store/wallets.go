package store

import (
	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
)

type WalletStore struct {
	*ListStore[models.Wallet, models.WalletInput, models.WalletPatch, WalletTotals]
}

func NewWalletStore(api client.API) *WalletStore {
	return &WalletStore{NewListStore[models.Wallet, models.WalletInput, models.WalletPatch](api, Resource[models.Wallet, WalletTotals]{
		Name:   "wallets",
		Path:   "/api/wallets",
		ID:     func(w models.Wallet) string { return w.ID },
		Totals: walletTotals,
	})}
}

// ByType groups balances by wallet type.
func (s *WalletStore) ByType() map[models.WalletType]float64 {
	grouped := map[models.WalletType][]models.Wallet{}
	for _, w := range s.Items() {
		grouped[w.Type] = append(grouped[w.Type], w)
	}
	out := make(map[models.WalletType]float64, len(grouped))
	for t, ws := range grouped {
		out[t] = TotalBalance(ws)
	}
	return out
}
