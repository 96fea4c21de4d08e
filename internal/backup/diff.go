package backup

import (
	"sort"
	"time"

	"github.com/inforexx/rbackup/pkg/types"
)

// Compute compares source and target listings and returns the differences
// sorted by path. Entries present on both sides with equal attributes are
// omitted.
//
// Sizes are compared exactly. Modtimes are compared at second precision, so
// backends that store different sub-second resolution do not produce noise;
// when a modtime did not parse, the raw strings are compared instead.
// Directories are compared by presence only.
func Compute(source, target []types.Entry) []types.Diff {
	srcByPath := make(map[string]types.Entry, len(source))
	for _, e := range source {
		srcByPath[e.Path] = e
	}
	dstByPath := make(map[string]types.Entry, len(target))
	for _, e := range target {
		dstByPath[e.Path] = e
	}

	paths := make([]string, 0, len(srcByPath)+len(dstByPath))
	for p := range srcByPath {
		paths = append(paths, p)
	}
	for p := range dstByPath {
		if _, ok := srcByPath[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var diffs []types.Diff
	for _, path := range paths {
		src, inSrc := srcByPath[path]
		dst, inDst := dstByPath[path]

		switch {
		case inSrc && !inDst:
			s := src
			diffs = append(diffs, types.Diff{
				Type:   types.MissingInTarget,
				Path:   path,
				Source: &s,
			})
		case inDst && !inSrc:
			d := dst
			diffs = append(diffs, types.Diff{
				Type:   types.MissingInSource,
				Path:   path,
				Target: &d,
			})
		default:
			if src.IsDir || dst.IsDir {
				continue
			}
			sizeDiff := src.Size != dst.Size
			modDiff := modTimeDiffers(src, dst)
			if !sizeDiff && !modDiff {
				continue
			}
			s, d := src, dst
			diffs = append(diffs, types.Diff{
				Type:        types.Different,
				Path:        path,
				Source:      &s,
				Target:      &d,
				SizeDiff:    sizeDiff,
				ModTimeDiff: modDiff,
			})
		}
	}

	return diffs
}

func modTimeDiffers(src, dst types.Entry) bool {
	if src.ModTime.IsZero() || dst.ModTime.IsZero() {
		return src.ModTimeRaw != dst.ModTimeRaw
	}
	return !src.ModTime.Truncate(time.Second).Equal(dst.ModTime.Truncate(time.Second))
}

// BuildPlan turns a diff into the copy and delete sets of a backup run:
// new and changed files are copied, files gone from the source are deleted.
func BuildPlan(diffs []types.Diff) types.Plan {
	var plan types.Plan
	for _, d := range diffs {
		switch d.Type {
		case types.MissingInTarget, types.Different:
			plan.Copies = append(plan.Copies, d.Path)
		case types.MissingInSource:
			plan.Deletes = append(plan.Deletes, d.Path)
		}
	}
	return plan
}
