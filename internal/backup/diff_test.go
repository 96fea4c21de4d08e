package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inforexx/rbackup/pkg/types"
)

func entry(path string, size int64, modtime string) types.Entry {
	e := types.Entry{Path: path, Size: size, ModTimeRaw: modtime}
	if t, err := time.Parse(time.RFC3339Nano, modtime); err == nil {
		e.ModTime = t
	}
	return e
}

func TestComputeMissing(t *testing.T) {
	source := []types.Entry{
		entry("only-src.txt", 10, "2024-03-01T10:00:00Z"),
		entry("both.txt", 20, "2024-03-01T10:00:00Z"),
	}
	target := []types.Entry{
		entry("both.txt", 20, "2024-03-01T10:00:00Z"),
		entry("only-dst.txt", 30, "2024-03-01T10:00:00Z"),
	}

	diffs := Compute(source, target)
	require.Len(t, diffs, 2)

	// sorted by path: only-dst.txt < only-src.txt
	assert.Equal(t, types.MissingInSource, diffs[0].Type)
	assert.Equal(t, "only-dst.txt", diffs[0].Path)
	assert.Nil(t, diffs[0].Source)
	require.NotNil(t, diffs[0].Target)
	assert.Equal(t, int64(30), diffs[0].Target.Size)

	assert.Equal(t, types.MissingInTarget, diffs[1].Type)
	assert.Equal(t, "only-src.txt", diffs[1].Path)
	assert.Nil(t, diffs[1].Target)
}

func TestComputeSizeDifference(t *testing.T) {
	source := []types.Entry{entry("f.txt", 10, "2024-03-01T10:00:00Z")}
	target := []types.Entry{entry("f.txt", 11, "2024-03-01T10:00:00Z")}

	diffs := Compute(source, target)
	require.Len(t, diffs, 1)
	assert.Equal(t, types.Different, diffs[0].Type)
	assert.True(t, diffs[0].SizeDiff)
	assert.False(t, diffs[0].ModTimeDiff)
}

func TestComputeModTimeSecondPrecision(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		differ   bool
	}{
		{
			name: "sub-second difference ignored",
			src:  "2024-03-01T10:00:00.123456789Z",
			dst:  "2024-03-01T10:00:00.987Z",
		},
		{
			name:   "one second apart differs",
			src:    "2024-03-01T10:00:00Z",
			dst:    "2024-03-01T10:00:01Z",
			differ: true,
		},
		{
			name: "identical",
			src:  "2024-03-01T10:00:00Z",
			dst:  "2024-03-01T10:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := []types.Entry{entry("f.txt", 5, tt.src)}
			target := []types.Entry{entry("f.txt", 5, tt.dst)}

			diffs := Compute(source, target)
			if tt.differ {
				require.Len(t, diffs, 1)
				assert.True(t, diffs[0].ModTimeDiff)
			} else {
				assert.Empty(t, diffs)
			}
		})
	}
}

func TestComputeModTimeRawFallback(t *testing.T) {
	// unparseable modtimes fall back to string comparison
	source := []types.Entry{entry("f.txt", 5, "garbage-a")}
	target := []types.Entry{entry("f.txt", 5, "garbage-b")}
	diffs := Compute(source, target)
	require.Len(t, diffs, 1)
	assert.True(t, diffs[0].ModTimeDiff)

	source = []types.Entry{entry("f.txt", 5, "same-garbage")}
	target = []types.Entry{entry("f.txt", 5, "same-garbage")}
	assert.Empty(t, Compute(source, target))
}

func TestComputeDirsByPresenceOnly(t *testing.T) {
	src := entry("d", -1, "2024-03-01T10:00:00Z")
	src.IsDir = true
	dst := entry("d", -1, "2024-06-15T12:00:00Z")
	dst.IsDir = true

	assert.Empty(t, Compute([]types.Entry{src}, []types.Entry{dst}))
}

func TestComputeSorted(t *testing.T) {
	source := []types.Entry{
		entry("z.txt", 1, "2024-03-01T10:00:00Z"),
		entry("a.txt", 1, "2024-03-01T10:00:00Z"),
		entry("m.txt", 1, "2024-03-01T10:00:00Z"),
	}

	diffs := Compute(source, nil)
	require.Len(t, diffs, 3)
	assert.Equal(t, "a.txt", diffs[0].Path)
	assert.Equal(t, "m.txt", diffs[1].Path)
	assert.Equal(t, "z.txt", diffs[2].Path)
}

func TestBuildPlan(t *testing.T) {
	diffs := []types.Diff{
		{Type: types.MissingInTarget, Path: "new.txt"},
		{Type: types.Different, Path: "changed.txt"},
		{Type: types.MissingInSource, Path: "gone.txt"},
	}

	plan := BuildPlan(diffs)
	assert.Equal(t, []string{"new.txt", "changed.txt"}, plan.Copies)
	assert.Equal(t, []string{"gone.txt"}, plan.Deletes)
	assert.False(t, plan.Empty())

	assert.True(t, BuildPlan(nil).Empty())
}

func TestStrayDirsDeepestFirst(t *testing.T) {
	dir := func(path string) types.Entry {
		return types.Entry{Path: path, IsDir: true}
	}

	source := []types.Entry{dir("keep")}
	target := []types.Entry{
		dir("keep"),
		dir("old"),
		dir("old/deep"),
		dir("old/deep/deeper"),
		dir("other"),
	}

	stray := StrayDirs(source, target)
	assert.Equal(t, []string{"old/deep/deeper", "old/deep", "old", "other"}, stray)
}

func TestStrayDirsNone(t *testing.T) {
	dirs := []types.Entry{{Path: "a", IsDir: true}}
	assert.Empty(t, StrayDirs(dirs, dirs))
}
