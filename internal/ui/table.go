package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	pkgtypes "github.com/inforexx/rbackup/pkg/types"
)

// cell is one styled table cell.
type cell struct {
	text  string
	style lipgloss.Style
}

// renderTable builds a styled box table.
func renderTable(headers []string, widths []int, rows [][]cell) string {
	var sb strings.Builder

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(TopT))
		}
	}
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	sb.WriteString(BorderStyle.Render(LeftT))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(Cross))
		}
	}
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Data rows
	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, c := range row {
			sb.WriteString(c.style.Render(" " + padRight(c.text, widths[i]) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(BottomT))
		}
	}
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	return sb.String()
}

func diffStyle(t pkgtypes.DiffType) lipgloss.Style {
	switch t {
	case pkgtypes.MissingInTarget:
		return NewStyle
	case pkgtypes.MissingInSource:
		return DeletedStyle
	case pkgtypes.Different:
		return ChangedStyle
	default:
		return ValueStyle
	}
}

func diffLabel(t pkgtypes.DiffType) string {
	switch t {
	case pkgtypes.MissingInTarget:
		return "new"
	case pkgtypes.MissingInSource:
		return "deleted"
	case pkgtypes.Different:
		return "changed"
	default:
		return string(t)
	}
}

// PrintDiffTable prints the differences in a styled box table.
func PrintDiffTable(diffs []pkgtypes.Diff) {
	headers := []string{"Status", "Path", "Src Size", "Dst Size", "Modified"}
	widths := []int{8, 52, 12, 12, 20}

	rows := make([][]cell, 0, len(diffs))
	for _, d := range diffs {
		style := diffStyle(d.Type)

		srcSize, dstSize := "-", "-"
		modified := "-"
		if d.Source != nil {
			srcSize = strconv.FormatInt(d.Source.Size, 10)
			modified = formatModTime(d.Source)
		}
		if d.Target != nil {
			dstSize = strconv.FormatInt(d.Target.Size, 10)
			if d.Source == nil {
				modified = formatModTime(d.Target)
			}
		}

		rows = append(rows, []cell{
			{diffLabel(d.Type), style},
			{d.Path, PathStyle},
			{srcSize, ValueStyle},
			{dstSize, ValueStyle},
			{modified, MutedStyle},
		})
	}

	fmt.Print(renderTable(headers, widths, rows))
}

// PrintJobTable prints running rclone jobs in a styled box table.
func PrintJobTable(jobs []pkgtypes.Job) {
	headers := []string{"PID", "Command", "Source", "Target", "Runtime"}
	widths := []int{8, 10, 34, 34, 10}

	rows := make([][]cell, 0, len(jobs))
	for _, j := range jobs {
		runtime := "-"
		if !j.Started.IsZero() {
			runtime = time.Since(j.Started).Truncate(time.Second).String()
		}
		sub := j.Subcommand
		if sub == "" {
			sub = "-"
		}

		rows = append(rows, []cell{
			{strconv.Itoa(int(j.PID)), ChangedStyle},
			{sub, ValueStyle},
			{orDash(j.Source), PathStyle},
			{orDash(j.Target), PathStyle},
			{runtime, MutedStyle},
		})
	}

	fmt.Print(renderTable(headers, widths, rows))
}

// PrintPairTable prints configured pairs in a styled box table.
func PrintPairTable(pairs []pkgtypes.Pair) {
	headers := []string{"Name", "Source", "Target"}
	widths := []int{18, 42, 42}

	rows := make([][]cell, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []cell{
			{p.Name, ChangedStyle},
			{p.Source, PathStyle},
			{p.Target, PathStyle},
		})
	}

	fmt.Print(renderTable(headers, widths, rows))
}

func formatModTime(e *pkgtypes.Entry) string {
	if e.ModTime.IsZero() {
		return e.ModTimeRaw
	}
	return e.ModTime.Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
