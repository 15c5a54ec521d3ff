/*
Package dialog implements the guided recommendation state machine.

The machine is a cyclic DFA over eight steps (category, brand, budget, sort,
recommend, compare_products, select_product, finalize). Dispatch is
table-driven: each step owns a handler that validates input against its
enumerated vocabulary and either advances the session or re-prompts without
mutating anything. The global reset keyword pre-empts every handler.

The machine itself is stateless; callers load a Session, run one Turn under
the session manager's lock, and persist the result.
*/
package dialog
