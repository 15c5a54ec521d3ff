// Package catalog loads the product catalog from CSV, owns the deploy-time
// funnel vocabulary (categories, brand sets, budget bands, sort labels), and
// implements the pure preference filter/sort engine behind every shortlist.
package catalog
