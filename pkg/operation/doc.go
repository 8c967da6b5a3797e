/*
Package operation implements the rewrite loop: read, transform, compare, persist.

	+-------------+      +-------------+      +-------------+
	|   Runner    | ---> |  Processor  | ---> |   status    |
	| (file list) |      | (one file)  |      | FileManager |
	+------+------+      +------+------+      +-------------+
	       |                    |
	       v                    v
	+-------------+      +-------------+
	|  Reporter   |      |    text     |
	| (console)   |      | TextReplacer|
	+-------------+      +-------------+

🎯 Purpose:
- Runs an ordered rule list over each requested file
- Writes a file back only when its content changed
- Turns every per-file failure into an Outcome instead of aborting the run

🔄 Flow (per file):
1. Read the file as UTF-8 text
2. Fold every rule over the content, in order
3. Compare the result to the original
4. Skip, or back up and atomically replace the file

⚡ Key Responsibilities:
- Driving the status.FileRecord phase machine
- Dry-run and diff rendering
- Sequential processing: one file reaches a terminal state before the next starts

🤝 Interfaces:
- text.TextReplacer: compiled rules
- status.FileManager: all file I/O
- Reporter: console and structured logging

🔍 Example:

	proc, err := operation.NewProcessor(operation.Options{
		Replacer: replacer,
		Files:    status.NewManager(root),
	})
	summary := operation.NewRunner(proc, reporter).Run(ctx, paths)
*/
package operation
