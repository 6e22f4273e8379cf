package suggest

import (
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

// buildPrompt renders the inventory-specialist prompt for one product. The
// model is instructed to answer with a JSON object matching the output
// schema (suggestedQuantity, reasoning).
func buildPrompt(input models.SuggestionInput) string {
	var b strings.Builder

	b.WriteString("You are an expert inventory management specialist. Your goal is to suggest the optimal reorder quantity for a given product to minimize stockouts while avoiding excess inventory.\n\n")
	b.WriteString("Consider the following factors:\n")
	b.WriteString("* Historical Demand: Analyze the provided historical demand data to identify trends and patterns.\n")
	b.WriteString("* Lead Time: Account for the lead time required to receive the reordered products.\n")
	b.WriteString("* Seasonality: Adjust the reorder quantity based on any seasonal demand fluctuations.\n\n")

	b.WriteString("Product Details:\n")
	fmt.Fprintf(&b, "* Product Name: %s\n", input.ProductName)
	fmt.Fprintf(&b, "* Current Stock: %d\n", input.CurrentStock)
	fmt.Fprintf(&b, "* Reorder Point: %d\n", input.ReorderPoint)
	fmt.Fprintf(&b, "* Lead Time (Days): %d\n", input.LeadTimeDays)
	if input.Seasonality != "" {
		fmt.Fprintf(&b, "* Seasonality: %s\n", input.Seasonality)
	}

	b.WriteString("\nHistorical Demand Data:\n")
	for _, point := range input.HistoricalDemand {
		fmt.Fprintf(&b, "* Date: %s, Quantity: %d\n", point.Date, point.Quantity)
	}

	fmt.Fprintf(&b, "\nBased on this information, what is the suggested reorder quantity for %s, and what is your reasoning? ", input.ProductName)
	b.WriteString("Be specific about how you are considering the historical demand, lead time and seasonality to arrive at your suggested quantity. ")
	b.WriteString("Ensure that the reorder quantity will cover demand during the lead time, and maintain the stock level above the reorder point, while also considering any historical trends and seasonality to avoid overstocking.\n\n")
	b.WriteString(`Answer with a JSON object: {"suggestedQuantity": <number>, "reasoning": "<detailed explanation>"}.`)

	return b.String()
}
