package dashboard

import (
	"fmt"

	"github.com/bobmcallan/ardex/internal/models"
	"github.com/bobmcallan/ardex/internal/view"
)

// placeholder stands in for values with no active account.
const placeholder = "—"

// Card builds the dashboard panel for a snapshot.
func Card(s *Snapshot) view.Card {
	card := view.Card{
		Title:   "Ardex Wallet",
		Actions: []string{"[Send]", "[Receive]", "[Swap]", "[Tokens]", "[Accounts]", "[Backup]"},
	}

	if !s.HasAccount {
		card.Fields = []view.Field{
			{Label: "Account", Value: placeholder},
			{Label: "HBAR", Value: placeholder},
			{Label: "USDT", Value: placeholder},
		}
		card.Lines = []string{"Connect or create an account to get started"}
		return card
	}

	card.Fields = []view.Field{
		{Label: "Account", Value: s.AccountID},
		{Label: "HBAR", Value: fmt.Sprintf("%.4f", s.Hbar)},
		{Label: "USDT", Value: fmt.Sprintf("%.2f", s.Usdt)},
	}
	for _, tx := range s.Transactions {
		card.Lines = append(card.Lines, transactionLine(tx))
	}
	if len(card.Lines) == 0 {
		card.Lines = []string{"No transactions yet"}
	}
	return card
}

// TokenAsset is one entry of the demo tokenized asset preview.
type TokenAsset struct {
	Name        string
	Description string
}

// TokenAssets returns the static tokenized asset preview. The module
// is demo content; there is no backing data yet.
func TokenAssets() []TokenAsset {
	assets := make([]TokenAsset, 0, 3)
	for i := 1; i <= 3; i++ {
		assets = append(assets, TokenAsset{
			Name:        fmt.Sprintf("Asset #%d", i),
			Description: "Sample description",
		})
	}
	return assets
}

// TokensCard builds the tokenized asset preview panel.
func TokensCard(assets []TokenAsset) view.Card {
	card := view.Card{Title: "Tokenized Assets (Preview)"}
	for _, asset := range assets {
		card.Lines = append(card.Lines, fmt.Sprintf("%s  %s", asset.Name, asset.Description))
	}
	card.Lines = append(card.Lines, "", "Tokenized module preview (work in progress)")
	return card
}

// ReceiveCard builds the receive panel for an account identifier. An
// empty identifier renders the no-account message instead.
func ReceiveCard(accountID string) view.Card {
	if accountID == "" {
		return view.Card{Title: "Receive", Lines: []string{"No active account"}}
	}
	return view.Card{
		Title:  "Receive",
		Fields: []view.Field{{Label: "Your account", Value: accountID}},
		Lines:  []string{"Share this identifier to receive funds."},
	}
}

// HistoryCard builds the expanded transaction list panel.
func HistoryCard(txs []models.Transaction) view.Card {
	card := view.Card{Title: "Transaction History"}
	for _, tx := range txs {
		card.Lines = append(card.Lines, transactionLine(tx))
	}
	if len(card.Lines) == 0 {
		card.Lines = []string{"No transactions yet"}
	}
	return card
}

func transactionLine(tx models.Transaction) string {
	if tx.To != "" {
		return fmt.Sprintf("%s  %-8s  %.4f → %s", tx.TxID, tx.Status, tx.Amount, tx.To)
	}
	return fmt.Sprintf("%s  %-8s  %.4f", tx.TxID, tx.Status, tx.Amount)
}
