// Package sim orchestrates request simulation: it runs error injection,
// resolves the latency profile, generates synthetic content, accounts
// tokens, and produces either an immediate response, a paced stream, or an
// injected fault for the handlers to render.
package sim
