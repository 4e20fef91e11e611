package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExtraction marks a failed content extraction. Non-fatal: the file is
	// still classified from whatever evidence remains.
	ErrExtraction = errors.New("extraction error")
	// ErrRuleConfig marks a malformed category or routing rule. The rule is
	// treated as non-applicable.
	ErrRuleConfig = errors.New("rule configuration error")
	// ErrRename marks a failed rename-field extraction. Non-fatal: the next
	// fallback field is used.
	ErrRename = errors.New("rename extraction error")
	// ErrFileSystem marks a failed move, rename, or hash operation. The file
	// is recorded with an error status and the run continues.
	ErrFileSystem = errors.New("filesystem error")
	// ErrValidation marks invalid pipeline input.
	ErrValidation = errors.New("validation error")
	// ErrDuplicate marks a file whose content already exists in its destination
	// folder. The file is quarantined rather than moved.
	ErrDuplicate = errors.New("duplicate file")
	// ErrConfiguration marks a configuration problem. Fatal before any file
	// has been processed.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
