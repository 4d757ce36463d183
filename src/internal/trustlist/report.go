// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package trustlist

import (
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/did-trust-registry/src/internal/persist"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Status is the outcome for one source file.
type Status int

const (
	// StatusAccepted files produced documents.
	StatusAccepted Status = iota
	// StatusSkipped files are .json files of another shape.
	StatusSkipped
	// StatusFailed files could not be parsed or normalized.
	StatusFailed
	// StatusIgnored files were passed over by extension.
	StatusIgnored
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "ignored"
	}
}

// FileResult records what happened to one source file.
type FileResult struct {
	Path   string // relative to the source directory
	Kind   Kind
	Status Status
	Kid    string
	Err    error
}

// Report summarizes a run of one target.
type Report struct {
	Target        string
	Files         []FileResult
	Certificates  int // indexed into the certificate store
	Keys          int // per-key documents produced, counted once per kid
	Persist       persist.Stats
	Canonicalizer string
}

// Count returns the number of files with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// RenderTable renders the run summary as a markdown table.
func (r *Report) RenderTable() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Target", "Accepted", "Skipped", "Failed", "Ignored", "Keys", "Written", "Unchanged"})
	table.Append([]string{
		r.Target,
		fmt.Sprintf("%d", r.Count(StatusAccepted)),
		fmt.Sprintf("%d", r.Count(StatusSkipped)),
		fmt.Sprintf("%d", r.Count(StatusFailed)),
		fmt.Sprintf("%d", r.Count(StatusIgnored)),
		fmt.Sprintf("%d", r.Keys),
		fmt.Sprintf("%d", r.Persist.Written),
		fmt.Sprintf("%d", r.Persist.Unchanged),
	})
	table.Render()
	return buf.String()
}
