package dialog

import (
	"fmt"
	"strings"

	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/compose"
	"github.com/stepedge/concierge/pkg/domain"
)

func categoryOptions() string {
	names := catalog.Categories()
	out := make([]string, len(names))
	for i, c := range names {
		out[i] = catalog.Capitalize(c)
	}
	return strings.Join(out, ", ")
}

func categoryPrompt() string {
	return fmt.Sprintf("What type of gadget are you looking for? (options: %s)", categoryOptions())
}

func invalidCategoryPrompt() string {
	return "Please select a valid category: " + categoryOptions()
}

func brandOptions(category string) string {
	brands := catalog.Brands(category)
	out := make([]string, len(brands))
	for i, b := range brands {
		out[i] = catalog.Capitalize(b)
	}
	return strings.Join(out, ", ")
}

func brandPrompt(category string) string {
	return fmt.Sprintf("Which brand do you prefer for your %s? (options: %s)", category, brandOptions(category))
}

func invalidBrandPrompt(category string) string {
	return "Please select a valid brand: " + brandOptions(category)
}

func budgetPrompt(category string) string {
	return fmt.Sprintf("What's your budget range for your gadget? (options: %s)",
		strings.Join(catalog.BudgetLabels(category), ", "))
}

func invalidBudgetPrompt(category string) string {
	return "Please select a valid budget range: " + strings.Join(catalog.BudgetLabels(category), ", ")
}

func sortPrompt() string {
	return fmt.Sprintf("How would you like to sort the recommendations? (options: %s)",
		strings.Join(catalog.SortOptions(), ", "))
}

func invalidSortPrompt() string {
	return "Please select a valid sort option: " + strings.Join(catalog.SortOptions(), ", ")
}

func noMatchPrompt(prefs domain.Preferences) string {
	return fmt.Sprintf("Sorry, I couldn't find any %ss from %s in the price range %s. Would you like to explore more options? (options: explore more, stop)",
		prefs.Category, catalog.Capitalize(prefs.Brand), prefs.Budget.Label())
}

func budgetFitLine(prefs domain.Preferences) string {
	return fmt.Sprintf("These options all fit within your budget of %s.", prefs.Budget.Label())
}

func recommendOptionsPrompt() string {
	return "Would you like to compare these products, proceed with one of these options, or stop the process? (options: compare, proceed, stop, explore more, go back to the previous recommendations)"
}

func comparePrompt(items []domain.Product) string {
	return fmt.Sprintf("Here's a detailed comparison of the recommended products:\n\n%s\nWould you like to proceed with one of these options, stop the process, explore more options, or go back to the previous recommendations? (options: proceed, stop, explore more, go back to the previous recommendations)",
		compose.Comparison(items))
}

func selectPrompt(items []domain.Product) string {
	var b strings.Builder
	b.WriteString("Great! Let's pick a product to proceed with. Here are the options I recommended:\n\n")
	names := make([]string, len(items))
	for i, p := range items {
		fmt.Fprintf(&b, "- %s: $%.2f\n", p.Name, p.Price)
		names[i] = p.Name
	}
	fmt.Fprintf(&b, "\nWhich one would you like to choose? (options: %s, explore more, stop)", strings.Join(names, ", "))
	return b.String()
}

func invalidSelectPrompt(items []domain.Product) string {
	names := make([]string, len(items))
	for i, p := range items {
		names[i] = p.Name
	}
	return fmt.Sprintf("Please select a valid product: %s, or choose 'explore more' or 'stop'.", strings.Join(names, ", "))
}

func selectedPrompt(p domain.Product) string {
	return fmt.Sprintf("You've selected %s for $%.2f. Would you like to add it to your cart, explore more items, or finalize your order? (options: add to cart, explore more, finalize my order)",
		p.Name, p.Price)
}

func addedToCartPrompt(p domain.Product) string {
	return fmt.Sprintf("%s has been added to your cart! Would you like to explore more items or finalize your order? (options: explore more, finalize my order)", p.Name)
}

func stopPrompt() string {
	return "Thanks for chatting! If you'd like to start over, just say 'start'."
}

func exploreMorePrompt() string {
	return "Let's explore more options. " + categoryPrompt()
}

func receiptPrompt(cart []domain.Product) string {
	var b strings.Builder
	b.WriteString("Thank you for your order! Here's what you've selected:\n")
	var total float64
	for _, p := range cart {
		fmt.Fprintf(&b, "- %s: $%.2f\n", p.Name, p.Price)
		total += p.Price
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", total)
	b.WriteString("Your order has been finalized. If you'd like to explore more gadgets, just say 'start'.")
	return b.String()
}
