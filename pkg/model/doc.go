// Package model defines the closed set of registration fields, the Draft that
// carries their raw values, the SubmissionRecord appended to history and the
// FormModel description presentation layers use to lay out inputs. Text
// fields hold their raw string input (age included, parsed only during
// validation) while agreeToTerms is the single boolean field. Draft and
// SubmissionRecord serialise as flat JSON objects keyed by field name so the
// persisted payloads stay readable by other tools.
package model
