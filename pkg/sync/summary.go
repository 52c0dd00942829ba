package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/casebridge/pkg/fsutil"
)

// WriteFile writes the summary as indented JSON, atomically replacing any
// existing file at path.
func (s Summary) WriteFile(ctx context.Context, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
