// Package scorer rates emails with the Gemini API.
//
// Each email is scored with a single, fixed triage prompt, sequentially and
// rate limited. The model is constrained to a JSON object with a 1-5
// priority, a one-sentence reason, and an action-needed flag. A response
// that cannot be parsed falls back to the configured neutral priority so
// one odd reply never sinks the digest; a failed request aborts the run.
package scorer
