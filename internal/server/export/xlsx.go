// Package export renders a user's tasks as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet of the workbook.
const SheetName = "Tasks"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Name", "Description", "Start date", "End date", "Planned days", "Tags", "Status",
	"Type", "Priority", "Executors", "Commentators", "Files", "Completed", "Time spent",
	"Completion date", "Created at",
}

// Filename returns the attachment name for an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("tasks_%s.xlsx", now.Format("20060102"))
}

// WriteTasksXLSX writes one header row and one row per task, in the given order.
func WriteTasksXLSX(w io.Writer, tasks []*models.Task) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	if err := setRow(f, 1, toAny(headers)); err != nil {
		return err
	}
	for i, t := range tasks {
		if err := setRow(f, i+2, taskRow(t)); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 30); err != nil {
		return err
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}

func taskRow(t *models.Task) []any {
	return []any{
		t.ID, t.Name, t.Description, formatDate(t.StartDate), formatDate(t.EndDate),
		t.PlannedDays, t.Tags, t.Status, t.Type, t.Priority, t.Executors, t.Commentators,
		t.Files, strconv.FormatBool(t.Completed), t.TimeSpent, formatDate(t.CompletionDate),
		t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
