// Package display provides terminal output for the harvest CLI: warnings and
// match listings.
//
// Color is only emitted when the destination is a terminal, so piping output
// into a file or another tool yields plain text.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "No include patterns",
//	    Message:    "Nothing under /dist will be harvested",
//	    Suggestion: "Pass --include '**/*' to harvest every file",
//	}
//	warning.Display(os.Stderr)
//
// # Match Listings
//
// Use ProgressIndicator to list the files a pattern set selects:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files))
//	progress.Start(root)
//	for _, rel := range files {
//	    progress.Step(rel)
//	}
//	progress.Complete()
package display
