package interactive

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/interactive/internal/debug"
)

// HistoryConfig holds all history-related configuration.
//
// File path supports multiple formats:
// - Empty string: Memory-only history (no persistence)
// - Absolute path: "/home/user/.app_history"
// - Home directory: "~/.app_history"
// - Relative path: "./app_history" (converted to absolute)
// - XDG compliant: Use DefaultHistoryFile() for "~/.config/interactive/history"
type HistoryConfig struct {
	Enabled     bool   // Enable/disable history functionality
	MaxEntries  int    // Maximum number of entries to keep in memory (default: 1000)
	File        string // File path for history persistence (empty = memory only)
	MaxFileSize int64  // Maximum file size in bytes before rotation (default: 1MB)
	MaxBackups  int    // Maximum number of backup files to keep (default: 3)
}

const (
	defaultMaxEntries  = 1000
	defaultMaxFileSize = 1024 * 1024
	defaultMaxBackups  = 3
)

// DefaultHistoryConfig returns a memory-only history configuration with the default limits.
func DefaultHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Enabled:     true,
		MaxEntries:  defaultMaxEntries,
		File:        "",
		MaxFileSize: defaultMaxFileSize,
		MaxBackups:  defaultMaxBackups,
	}
}

// DefaultHistoryFile returns the default history file path following XDG Base Directory Specification.
// Returns ~/.config/interactive/history or $XDG_CONFIG_HOME/interactive/history if XDG_CONFIG_HOME is set.
func DefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "interactive", "history")
}

// History is the log of submitted lines plus the recall cursor used by the
// Up and Down keys.
//
// Entries are distinct: submitting a line that is already in the log leaves
// the log untouched, and the entry keeps its original place. The recall
// cursor ranges over [0, Len()], where Len() means "not recalling".
type History struct {
	config  *HistoryConfig
	entries []string
	recall  int
}

// NewHistory creates an empty history with the given configuration.
func NewHistory(config *HistoryConfig) *History {
	if config == nil {
		config = DefaultHistoryConfig()
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = defaultMaxEntries
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = defaultMaxFileSize
	}
	if config.MaxBackups < 0 {
		config.MaxBackups = defaultMaxBackups
	}

	// Expand and convert file path to absolute path if specified
	if config.File != "" {
		if absPath, err := expandHistoryPath(config.File); err == nil {
			config.File = absPath
		}
	}

	return &History{
		config:  config,
		entries: make([]string, 0),
	}
}

// IsEnabled returns whether history functionality is enabled
func (h *History) IsEnabled() bool {
	return h.config.Enabled
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// SetEntries replaces the log. Blank and repeated lines are dropped.
func (h *History) SetEntries(entries []string) {
	h.entries = h.entries[:0]
	for _, e := range entries {
		h.add(e)
	}
	h.trim()
	h.ResetRecall()
}

// Clear empties the log.
func (h *History) Clear() {
	h.entries = []string{}
	h.ResetRecall()
}

// Submit records a finished line. Blank lines and lines already present are
// ignored. The recall cursor is reset either way.
func (h *History) Submit(line string) {
	defer h.ResetRecall()
	if !h.config.Enabled {
		return
	}
	if h.add(line) {
		debug.Log("history submit", "entries", len(h.entries))
		h.trim()
	}
}

func (h *History) add(line string) bool {
	if isBlank([]rune(line)) || slices.Contains(h.entries, line) {
		return false
	}
	h.entries = append(h.entries, line)
	return true
}

func (h *History) trim() {
	if over := len(h.entries) - h.config.MaxEntries; over > 0 {
		h.entries = append([]string{}, h.entries[over:]...)
	}
}

// ResetRecall points the recall cursor one past the newest entry.
func (h *History) ResetRecall() {
	h.recall = len(h.entries)
}

// RecallPrevious steps back one entry and returns a copy of it. At the
// oldest entry it returns current unchanged.
func (h *History) RecallPrevious(current []rune) []rune {
	if h.recall <= 0 || len(h.entries) == 0 {
		return current
	}
	h.recall--
	return []rune(h.entries[h.recall])
}

// RecallNext steps forward one entry and returns a copy of it. Moving past
// the newest entry returns an empty buffer and ends recall.
func (h *History) RecallNext() []rune {
	if h.recall >= len(h.entries)-1 {
		h.recall = len(h.entries)
		return []rune{}
	}
	h.recall++
	return []rune(h.entries[h.recall])
}

// Load loads history from the configured file
func (h *History) Load() error {
	if !h.config.Enabled || h.config.File == "" {
		return nil
	}

	file, err := os.Open(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist yet, that's ok
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.add(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	h.trim()
	h.ResetRecall()
	debug.Log("history loaded", "file", h.config.File, "entries", len(h.entries))
	return nil
}

// Save writes the current history to the configured file
func (h *History) Save() error {
	if !h.config.Enabled || h.config.File == "" {
		return nil
	}

	if err := h.rotateIfNeeded(); err != nil {
		return fmt.Errorf("failed to rotate history file: %w", err)
	}

	dir := filepath.Dir(h.config.File)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	return h.writeEntries(h.entries)
}

func (h *History) writeEntries(entries []string) error {
	file, err := os.Create(h.config.File)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// rotateIfNeeded checks if the history file needs rotation and performs it
func (h *History) rotateIfNeeded() error {
	info, err := os.Stat(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < h.config.MaxFileSize {
		return nil
	}
	return h.rotateHistoryFile()
}

// rotateHistoryFile shifts numbered backups and keeps the newest half of the
// log in memory so the fresh file does not immediately rotate again.
func (h *History) rotateHistoryFile() error {
	if h.config.MaxBackups <= 0 {
		return os.Truncate(h.config.File, 0)
	}

	oldestBackup := h.config.File + "." + strconv.Itoa(h.config.MaxBackups)
	if _, err := os.Stat(oldestBackup); err == nil {
		if err := os.Remove(oldestBackup); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}

	for i := h.config.MaxBackups - 1; i >= 1; i-- {
		oldFile := h.config.File + "." + strconv.Itoa(i)
		newFile := h.config.File + "." + strconv.Itoa(i+1)
		if _, err := os.Stat(oldFile); err == nil {
			if err := os.Rename(oldFile, newFile); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}

	if err := os.Rename(h.config.File, h.config.File+".1"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	keep := len(h.entries) / 2
	if keep < 100 {
		keep = len(h.entries)
	}
	h.entries = append([]string{}, h.entries[len(h.entries)-keep:]...)
	h.ResetRecall()
	debug.Log("history rotated", "file", h.config.File, "kept", keep)
	return nil
}

// expandHistoryPath expands "~" and converts the path to an absolute one.
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return absPath, nil
}
