// Package types defines the OpenAI-compatible wire types served by the
// simulator: the Chat Completions API, the Responses API, the model catalog
// and the error envelope.
//
// The shapes match the OpenAI API format exactly so that existing OpenAI
// SDKs and tools can point at the simulator without modification.
package types
