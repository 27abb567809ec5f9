// Package pkg provides the core libraries for Tabsmith guitar tablature
// layout and editing.
//
// # Overview
//
// Tabsmith positions fret numbers and technique markers on six string-lines,
// wraps them into rows and lets an editor select, delete and insert
// positions. The pkg directory is organized into three areas:
//
//  1. Domain: [tab] (layout and editing) and [fretboard] (the clickable neck)
//  2. Infrastructure: [cache], [store], [session], [config], [observability]
//  3. Orchestration: [pipeline] (parse, layout, render) with [render] output
//
// # Architecture
//
// The typical data flow:
//
//	notation grid (JSON)
//	         ↓
//	    [tabio] package (read and validate)
//	         ↓
//	    [tab] package (Builder + Manager materialize the grid)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON geometry, ASCII tab)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tabsmith/pkg/render/sink"
//	    "github.com/matzehuels/tabsmith/pkg/tab"
//	)
//
//	g := tab.Grid{1: {2: "3"}, 2: {0: "0", 1: "1", 2: "0", 3: "2", 4: "3"}}
//	svg, _ := sink.RenderSVG(g)
//	fmt.Print(sink.RenderText(g))
//
// Interactive editing goes through [tab.Manager]; long-lived editing
// sessions backed by a document store live in [session].
//
// [tab]: github.com/matzehuels/tabsmith/pkg/tab
// [tab.Manager]: github.com/matzehuels/tabsmith/pkg/tab#Manager
// [fretboard]: github.com/matzehuels/tabsmith/pkg/fretboard
// [cache]: github.com/matzehuels/tabsmith/pkg/cache
// [store]: github.com/matzehuels/tabsmith/pkg/store
// [session]: github.com/matzehuels/tabsmith/pkg/session
// [config]: github.com/matzehuels/tabsmith/pkg/config
// [observability]: github.com/matzehuels/tabsmith/pkg/observability
// [pipeline]: github.com/matzehuels/tabsmith/pkg/pipeline
// [render]: github.com/matzehuels/tabsmith/pkg/render
// [render/sink]: github.com/matzehuels/tabsmith/pkg/render/sink
// [tabio]: github.com/matzehuels/tabsmith/pkg/tabio
package pkg
