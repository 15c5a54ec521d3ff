package domain

// Step is a dialog state. The set is exhaustive and fixed at deploy time;
// the machine is cyclic, so there is no terminal step.
type Step string

const (
	StepCategory  Step = "category"
	StepBrand     Step = "brand"
	StepBudget    Step = "budget"
	StepSort      Step = "sort"
	StepRecommend Step = "recommend"
	StepCompare   Step = "compare_products"
	StepSelect    Step = "select_product"
	StepFinalize  Step = "finalize"
)

// Steps lists every dialog state in funnel order.
func Steps() []Step {
	return []Step{
		StepCategory, StepBrand, StepBudget, StepSort,
		StepRecommend, StepCompare, StepSelect, StepFinalize,
	}
}

// stepIndex is s's position in funnel order, 0 for an unknown step.
func stepIndex(s Step) int {
	for i, step := range Steps() {
		if step == s {
			return i
		}
	}
	return 0
}

// Known reports whether s is one of the enumerated dialog states.
func (s Step) Known() bool {
	switch s {
	case StepCategory, StepBrand, StepBudget, StepSort,
		StepRecommend, StepCompare, StepSelect, StepFinalize:
		return true
	}
	return false
}
