// Package git wraps the git commands lazyuntrack shells out to.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	log "github.com/chmouel/lazyuntrack/internal/log"
)

// LookupPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries.
var LookupPath = exec.LookPath

// NotifyFn receives ongoing notifications.
type NotifyFn func(message string, severity string)

// NotifyOnceFn reports deduplicated notification messages.
type NotifyOnceFn func(key string, message string, severity string)

// Service orchestrates the git subprocesses the UI and CLI run.
type Service struct {
	notify     NotifyFn
	notifyOnce NotifyOnceFn
	semaphore  chan struct{}
}

// NewService constructs a Service and sets up concurrency limits.
func NewService(notify NotifyFn, notifyOnce NotifyOnceFn) *Service {
	limit := runtime.NumCPU() * 2
	if limit < 4 {
		limit = 4
	}
	if limit > 32 {
		limit = 32
	}

	// Counting semaphore: the channel starts full with 'limit' tokens.
	// AcquireSlot takes a token (blocks when none is available),
	// ReleaseSlot returns it.
	semaphore := make(chan struct{}, limit)
	for i := 0; i < limit; i++ {
		semaphore <- struct{}{}
	}

	return &Service{
		notify:     notify,
		notifyOnce: notifyOnce,
		semaphore:  semaphore,
	}
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// prepareAllowedCommand refuses to build anything but a git invocation.
func prepareAllowedCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}

	if args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- arguments for git come from internal logic and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

// HasGit reports whether a git binary is reachable in PATH.
func HasGit() bool {
	_, err := LookupPath("git")
	return err == nil
}

// AcquireSlot takes a token from the subprocess semaphore.
func (s *Service) AcquireSlot() {
	<-s.semaphore
}

// ReleaseSlot returns a token to the subprocess semaphore.
func (s *Service) ReleaseSlot() {
	s.semaphore <- struct{}{}
}

// RunGit executes a git command and optionally trims its output. Exit codes
// listed in okReturncodes are treated as success with empty stderr handling;
// anything else notifies once per cwd+command unless silent.
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	s.debugf("run: %s (cwd=%s)", command, cwd)

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		key := fmt.Sprintf("unsupported_cmd:%s", command)
		s.notifyOnce(key, fmt.Sprintf("Unsupported command: %s", command), "error")
		s.debugf("error: %s (unsupported command)", command)
		return ""
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			returnCode := exitError.ExitCode()
			if !slices.Contains(okReturncodes, returnCode) {
				if silent {
					s.debugf("error: %s (exit %d, silenced)", command, returnCode)
					return ""
				}
				stderr := string(exitError.Stderr)
				suffix := fmt.Sprintf(" (exit %d)", returnCode)
				if stderr != "" {
					suffix = ": " + strings.TrimSpace(stderr)
				}
				key := fmt.Sprintf("git_fail:%s:%s", cwd, command)
				s.notifyOnce(key, fmt.Sprintf("Command failed: %s%s", command, suffix), "error")
				s.debugf("error: %s%s", command, suffix)
				return ""
			}
		} else {
			if !silent {
				key := "cmd_missing:git"
				s.notifyOnce(key, "Command not found: git", "error")
				s.debugf("error: command not found: git")
			}
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out
}

// RunCommandChecked runs the provided git command and reports failures via
// the notify callback. Returns true on success.
func (s *Service) RunCommandChecked(ctx context.Context, args []string, cwd, errorPrefix string) bool {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	s.debugf("run: %s (cwd=%s)", command, cwd)

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		message := fmt.Sprintf("%s: %v", errorPrefix, err)
		if errorPrefix == "" {
			message = fmt.Sprintf("command error: %v", err)
		}
		s.notify(message, "error")
		s.debugf("error: %s", message)
		return false
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			s.notify(fmt.Sprintf("%s: %s", errorPrefix, detail), "error")
			s.debugf("error: %s: %s", errorPrefix, detail)
		} else {
			s.notify(fmt.Sprintf("%s: %v", errorPrefix, err), "error")
			s.debugf("error: %s: %v", errorPrefix, err)
		}
		return false
	}

	s.debugf("ok: %s", command)
	return true
}

// Untrack removes one file from its repository's index while keeping it on
// disk. The relative path is passed after -- so leading dashes cannot be
// taken for options. Output is the trimmed combined output of git.
func (s *Service) Untrack(ctx context.Context, repoRoot, relPath string) (string, error) {
	args := []string{"git", "rm", "--cached", "--quiet", "--", relPath}
	command := strings.Join(args, " ")
	s.debugf("run: %s (cwd=%s)", command, repoRoot)

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		return "", err
	}
	cmd.Dir = repoRoot

	output, err := cmd.CombinedOutput()
	detail := strings.TrimSpace(string(output))
	if err != nil {
		s.debugf("error: %s: %s", command, detail)
		if detail != "" {
			return detail, fmt.Errorf("git rm --cached %s: %s", relPath, detail)
		}
		return detail, fmt.Errorf("git rm --cached %s: %w", relPath, err)
	}

	s.debugf("ok: %s", command)
	return detail, nil
}

// TopLevel returns the absolute root of the working copy containing path,
// or "" when path is not inside one.
func (s *Service) TopLevel(ctx context.Context, path string) string {
	return s.RunGit(ctx, []string{"git", "rev-parse", "--show-toplevel"}, path, []int{0}, true, true)
}

// InsideWorkTree reports whether path sits inside a git working copy.
func (s *Service) InsideWorkTree(ctx context.Context, path string) bool {
	out := s.RunGit(ctx, []string{"git", "rev-parse", "--is-inside-work-tree"}, path, []int{0}, true, true)
	return out == "true"
}

// CurrentBranch returns the branch checked out at path, or "" for a
// detached HEAD.
func (s *Service) CurrentBranch(ctx context.Context, path string) string {
	out := s.RunGit(ctx, []string{"git", "rev-parse", "--abbrev-ref", "HEAD"}, path, []int{0}, true, true)
	if out == "HEAD" {
		return ""
	}
	return out
}

// CheckIgnore explains which ignore rule matches relPath inside repoRoot.
// The output lines look like "source:linenum:pattern<tab>path". Exit code 1
// means no rule matches, which is reported as empty output, not an error.
func (s *Service) CheckIgnore(ctx context.Context, repoRoot, relPath string) string {
	return s.RunGit(ctx, []string{"git", "check-ignore", "--verbose", "--", relPath}, repoRoot, []int{0, 1}, true, true)
}
