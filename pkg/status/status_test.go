package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestManager_TracksEntries(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewDefaultFileFormatter(), nil)

	mgr.StartOperation(ctx, 3)
	mgr.UpdateStatus(ctx, FileEntry{Path: "snapcraft.yaml", Status: StatusUnchanged})
	mgr.UpdateProgress(ctx, 1)
	mgr.UpdateStatus(ctx, FileEntry{Path: "Cargo.toml", Status: StatusModified, Replacements: 1})
	mgr.UpdateProgress(ctx, 2)
	mgr.UpdateStatus(ctx, FileEntry{Path: "README.md", Status: StatusModified, Replacements: 2})
	mgr.UpdateProgress(ctx, 3)
	mgr.FinishOperation(ctx)

	files := mgr.Files()
	require.Len(t, files, 3)
	// sorted by path
	assert.Equal(t, "Cargo.toml", files[0].Path)
	assert.Equal(t, "README.md", files[1].Path)
	assert.Equal(t, "snapcraft.yaml", files[2].Path)

	counts := mgr.Counts()
	assert.Equal(t, 2, counts[StatusModified])
	assert.Equal(t, 1, counts[StatusUnchanged])
	assert.Equal(t, 0, counts[StatusError])
}

func TestManager_LatestEntryWins(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewDefaultFileFormatter(), nil)

	mgr.UpdateStatus(ctx, FileEntry{Path: "Cargo.toml", Status: StatusPending, Replacements: 1})
	mgr.UpdateStatus(ctx, FileEntry{Path: "Cargo.toml", Status: StatusModified, Replacements: 1})

	files := mgr.Files()
	require.Len(t, files, 1)
	assert.Equal(t, StatusModified, files[0].Status)
}

// recordingFormatter captures which formatter methods were invoked
type recordingFormatter struct {
	entries   []FileEntry
	errors    []error
	progress  int
	delegated DefaultFileFormatter
}

func (f *recordingFormatter) FormatFileEntry(entry FileEntry) string {
	f.entries = append(f.entries, entry)
	return f.delegated.FormatFileEntry(entry)
}

func (f *recordingFormatter) FormatProgress(current, total int) string {
	f.progress++
	return f.delegated.FormatProgress(current, total)
}

func (f *recordingFormatter) FormatError(err error) string {
	f.errors = append(f.errors, err)
	return f.delegated.FormatError(err)
}

func TestManager_EntriesRenderThroughFormatter(t *testing.T) {
	ctx := context.Background()
	formatter := &recordingFormatter{}
	mgr := NewManager(formatter, NewUserLogger(ctx, formatter))

	mgr.StartOperation(ctx, 2)
	mgr.UpdateStatus(ctx, FileEntry{Path: "Cargo.toml", Status: StatusModified, Replacements: 1})
	mgr.UpdateProgress(ctx, 1)
	mgr.UpdateStatus(ctx, FileEntry{Path: "gone.yaml", Status: StatusError, Err: errors.New("no such file")})
	mgr.UpdateProgress(ctx, 2)
	mgr.FinishOperation(ctx)

	// every recorded entry was rendered by the formatter, not ad hoc
	require.Len(t, formatter.entries, 2)
	assert.Equal(t, "Cargo.toml", formatter.entries[0].Path)
	assert.Equal(t, "gone.yaml", formatter.entries[1].Path)

	// the error path went through FormatError as well
	require.Len(t, formatter.errors, 1)
	assert.Contains(t, formatter.errors[0].Error(), "no such file")

	assert.GreaterOrEqual(t, formatter.progress, 2)
}

func TestUserLogger_LogErrorUsesFormatter(t *testing.T) {
	formatter := &recordingFormatter{}
	userLogger := NewUserLogger(context.Background(), formatter)

	userLogger.LogError("sync failed", errors.New("boom"))

	require.Len(t, formatter.errors, 1)
	assert.Contains(t, formatter.errors[0].Error(), "boom")
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestDefaultFileFormatter_FormatFileEntry(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name  string
		entry FileEntry
		want  string
	}{
		{
			name:  "modified",
			entry: FileEntry{Path: "Cargo.toml", Status: StatusModified, Replacements: 1},
			want:  "Cargo.toml (1 replaced)",
		},
		{
			name:  "pending",
			entry: FileEntry{Path: "README.md", Status: StatusPending, Replacements: 2},
			want:  "README.md (2 would be replaced)",
		},
		{
			name:  "unchanged",
			entry: FileEntry{Path: "snapcraft.yaml", Status: StatusUnchanged},
			want:  "Unchanged snapcraft.yaml",
		},
		{
			name:  "error",
			entry: FileEntry{Path: "gone.toml", Status: StatusError, Err: errors.New("boom")},
			want:  "Failed gone.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, f.FormatFileEntry(tt.entry), tt.want)
		})
	}
}

func TestDefaultFileFormatter_FormatProgress(t *testing.T) {
	f := NewDefaultFileFormatter()

	assert.Equal(t, "⏳ Progress: 1/3 (33%)", f.FormatProgress(1, 3))
	assert.Equal(t, "✅ Progress: 3/3 (100%)", f.FormatProgress(3, 3))
	assert.Equal(t, "✅ Progress: 0/0 (0%)", f.FormatProgress(0, 0))
}

func TestDefaultFileFormatter_FormatError(t *testing.T) {
	f := NewDefaultFileFormatter()

	assert.Empty(t, f.FormatError(nil))
	assert.Contains(t, f.FormatError(errors.New("open Cargo.toml: no such file")), "Cargo.toml")
}
