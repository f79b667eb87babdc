package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"
)

const recentTransactionLimit = 10

func analysisPrompt(items []models.InventoryItem, recent []models.Transaction) string {
	inventory := make([]string, 0, len(items))
	for _, item := range items {
		inventory = append(inventory, fmt.Sprintf("%s: %s %s (Min: %s)", item.Name, item.Quantity.String(), item.Unit.String(), item.MinStock.String()))
	}

	transactions := make([]string, 0, recentTransactionLimit)
	for i, entry := range recent {
		if i == recentTransactionLimit {
			break
		}
		transactions = append(transactions, fmt.Sprintf("%s: %s", entry.Type(), entry.Details))
	}

	return fmt.Sprintf(`You are an expert Factory Manager AI for a candy factory.

Here is the current inventory status:
%s

Here are recent transactions:
%s

Please provide a concise, 3-point executive summary of the factory status.
1. Identify critical low stock items.
2. Suggest a production focus based on available raw materials.
3. Point out any potential supply chain risks or anomalies.

Keep the tone professional but sweet.`, strings.Join(inventory, "\n"), strings.Join(transactions, "\n"))
}

type contextLine struct {
	Name string `json:"name"`
	Qty  string `json:"qty"`
}

func chatPrompt(items []models.InventoryItem, message string) (string, error) {
	lines := make([]contextLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, contextLine{Name: item.Name, Qty: item.Quantity.String()})
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Context: You are a helper for a candy factory inventory app.
Current Data Context: %s

User Question: %s

Answer concisely and helpfully.`, data, message), nil
}
