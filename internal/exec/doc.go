// Package exec runs external commands for the generation pipeline.
//
// Three pieces work together:
//
//  1. Executor runs one command to completion with streaming output,
//     context cancellation, and a hard wall-clock timeout. Results are
//     classified into SpawnError (cannot start), TimeoutError (killed and
//     reaped after the deadline), and ExitError (non-zero status with a
//     diagnostic output tail).
//  2. Registry lets domain packages register CommandWrapper
//     implementations (npm installs, git init) without this package
//     knowing anything about those tools.
//  3. StreamingWriter and TeeWriter provide line-oriented output plumbing
//     so long-running installs can be progress-reported instead of
//     buffered until exit.
//
// There is deliberately no retry logic here: callers own retry policy.
package exec
