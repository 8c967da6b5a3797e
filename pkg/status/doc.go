/*
Package status manages file storage and per-file state tracking for rewriterc.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           |  Phases  |
	| (Storage) |           | Outcomes |
	+-----------+           +----------+

🎯 Purpose:
- Reads files as strict UTF-8 and writes them back atomically
- Tracks where each file is in its lifecycle
- Classifies the terminal outcome of each file
- Tallies outcomes into a run summary

🔄 Lifecycle of one file:

	Pending -> Reading -> Errored
	           Reading -> Transforming -> Comparing -> Updated | Skipped | Errored

Comparing only reaches Errored when the write fails. Terminal phases never
transition again.

⚡ Errors:
- FileAccessError: missing, unreadable or unwritable files
- EncodingError: content that is not valid UTF-8

🔍 Example:

	mgr := status.NewManager(root)
	rec := status.NewFileRecord(path)

	_ = rec.Advance(ctx, status.PhaseReading)
	content, err := mgr.ReadText(ctx, path)
*/
package status
