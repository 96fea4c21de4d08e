package backup

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inforexx/rbackup/internal/rclone"
	"github.com/inforexx/rbackup/pkg/types"
)

// Engine orchestrates listing, comparison and apply steps around the rclone
// client. It computes what to do; rclone does all the transferring.
type Engine struct {
	rc     *rclone.Client
	log    *logrus.Logger
	folder string // report folder
	stamp  string // run timestamp for report names
	runID  string
	Hash   bool // request hashes in listings
}

// NewEngine creates an engine writing its reports into folder with the given
// run timestamp.
func NewEngine(rc *rclone.Client, log *logrus.Logger, folder, stamp string) *Engine {
	return &Engine{
		rc:     rc,
		log:    log,
		folder: folder,
		stamp:  stamp,
		runID:  uuid.NewString()[:8],
	}
}

// RunID returns the short run identifier used in report names.
func (e *Engine) RunID() string {
	return e.runID
}

// CompareResult holds the listings, differences and report paths of one
// compare run.
type CompareResult struct {
	Source []types.Entry
	Target []types.Entry
	Diffs  []types.Diff

	FileListPath string
	DiffListPath string
}

// Compare lists both sides, computes the differences, writes the file list
// and diff list reports, and logs every difference found.
func (e *Engine) Compare(ctx context.Context, src, dst string) (*CompareResult, error) {
	opts := rclone.ListOptions{
		Recursive: true,
		FilesOnly: true,
		FastList:  true,
		Hash:      e.Hash,
	}

	e.log.Info("Collecting full structure of source and target...")

	source, err := e.rc.ListJSON(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list source %s: %w", src, err)
	}
	e.log.Infof("Collected %d items from source.", len(source))

	target, err := e.rc.ListJSON(ctx, dst, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list target %s: %w", dst, err)
	}
	e.log.Infof("Collected %d items from target.", len(target))

	res := &CompareResult{
		Source:       source,
		Target:       target,
		Diffs:        Compute(source, target),
		FileListPath: e.reportPath("filelist"),
		DiffListPath: e.reportPath("difflist"),
	}

	if err := WriteFileList(res.FileListPath, source, target); err != nil {
		return nil, err
	}
	e.log.Infof("Saved source and target structures to %s", res.FileListPath)

	e.log.Infof("Found %d differences between source and target:", len(res.Diffs))
	for _, d := range res.Diffs {
		switch d.Type {
		case types.MissingInTarget:
			e.log.Infof("NEW FILE: %s (Size: %d, ModTime: %s)", d.Path, d.Source.Size, d.Source.ModTimeRaw)
		case types.MissingInSource:
			e.log.Infof("DELETED: %s (Size: %d, ModTime: %s)", d.Path, d.Target.Size, d.Target.ModTimeRaw)
		case types.Different:
			var changes []string
			if d.SizeDiff {
				changes = append(changes, fmt.Sprintf("Size: %d -> %d", d.Source.Size, d.Target.Size))
			}
			if d.ModTimeDiff {
				changes = append(changes, fmt.Sprintf("ModTime: %s -> %s", d.Source.ModTimeRaw, d.Target.ModTimeRaw))
			}
			e.log.Infof("CHANGED: %s (%s)", d.Path, strings.Join(changes, ", "))
		}
	}
	if len(res.Diffs) == 0 {
		e.log.Info("No differences found - source and target are identical!")
	}

	if err := WriteDiffList(res.DiffListPath, res.Diffs); err != nil {
		return nil, err
	}
	e.log.Infof("Saved differences to %s", res.DiffListPath)

	return res, nil
}

// Apply performs the copy and delete operations of a plan.
func (e *Engine) Apply(ctx context.Context, src, dst string, plan types.Plan, tuning types.Tuning) error {
	e.log.Infof("Planned copies/updates: %d files", len(plan.Copies))
	e.log.Infof("Planned deletions: %d files", len(plan.Deletes))

	if len(plan.Copies) > 0 {
		e.log.Infof("Copying %d files...", len(plan.Copies))
		if err := e.rc.CopyFiles(ctx, src, dst, plan.Copies, tuning); err != nil {
			e.log.Errorf("Copy operation failed: %v", err)
			return fmt.Errorf("copy failed: %w", err)
		}
		e.log.Info("Copy completed successfully.")
	}

	if len(plan.Deletes) > 0 {
		e.log.Infof("Deleting %d files...", len(plan.Deletes))
		if err := e.rc.DeleteFiles(ctx, dst, plan.Deletes, true); err != nil {
			e.log.Errorf("Deletion operation failed: %v", err)
			return fmt.Errorf("delete failed: %w", err)
		}
		e.log.Info("Deletions completed successfully.")
	}

	return nil
}

// StrayDirs returns the folders present under dst but not under src,
// deepest first so children are purged before their parents.
func (e *Engine) StrayDirs(ctx context.Context, src, dst string) ([]string, error) {
	opts := rclone.ListOptions{
		Recursive: true,
		DirsOnly:  true,
		FastList:  true,
	}

	e.log.Info("Collecting source folder structure...")
	source, err := e.rc.ListJSON(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list source %s: %w", src, err)
	}
	e.log.Infof("Collected %d folders from source.", len(source))

	e.log.Info("Collecting target folder structure...")
	target, err := e.rc.ListJSON(ctx, dst, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list target %s: %w", dst, err)
	}
	e.log.Infof("Collected %d folders from target.", len(target))

	return StrayDirs(source, target), nil
}

// StrayDirs computes the target-only folders from dirs-only listings,
// ordered deepest first.
func StrayDirs(source, target []types.Entry) []string {
	inSource := make(map[string]bool, len(source))
	for _, e := range source {
		inSource[e.Path] = true
	}

	var stray []string
	for _, e := range target {
		if !inSource[e.Path] {
			stray = append(stray, e.Path)
		}
	}

	sort.Slice(stray, func(i, j int) bool {
		di := strings.Count(stray[i], "/")
		dj := strings.Count(stray[j], "/")
		if di != dj {
			return di > dj
		}
		return stray[i] < stray[j]
	})

	return stray
}

// purgeOutcome classifies a failed purge of a single folder.
type purgeOutcome int

const (
	purgeFailed purgeOutcome = iota
	// folder gained content since the listing
	purgeSkippedNotEmpty
	// folder already removed, e.g. together with a parent
	purgeSkippedGone
)

// classifyPurgeError sorts a purge failure into the skip-with-warning cases
// and real failures. rclone reports a missing folder either with "not found"
// in the message or with exit status 3.
func classifyPurgeError(err error) purgeOutcome {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "directory not empty"):
		return purgeSkippedNotEmpty
	case strings.Contains(msg, "not found"), strings.Contains(msg, "exit status 3"):
		return purgeSkippedGone
	default:
		return purgeFailed
	}
}

// PurgeDirs purges the given folders (paths relative to dst) one by one.
// Folders already gone or reported non-empty by rclone are skipped with a
// warning; other failures are counted and reported in the returned error.
func (e *Engine) PurgeDirs(ctx context.Context, dst string, dirs []string) (int, error) {
	purged := 0
	failed := 0

	for _, rel := range dirs {
		full := strings.TrimSuffix(dst, "/") + "/" + path.Clean(rel)
		err := e.rc.Purge(ctx, full)
		if err == nil {
			e.log.Infof("Purged folder and contents: %s", full)
			purged++
			continue
		}

		switch classifyPurgeError(err) {
		case purgeSkippedNotEmpty:
			e.log.Warnf("Skipped non-empty folder %s: %v", full, err)
		case purgeSkippedGone:
			e.log.Warnf("Folder already deleted or not found %s: %v", full, err)
		default:
			e.log.Errorf("Failed to delete %s: %v", full, err)
			failed++
		}
	}

	e.log.Infof("Purged %d folders successfully.", purged)
	if failed > 0 {
		return purged, fmt.Errorf("%d folders failed to purge", failed)
	}
	return purged, nil
}

func (e *Engine) reportPath(kind string) string {
	return fmt.Sprintf("%s/%s_%s_%s.csv", e.folder, e.stamp, e.runID, kind)
}
