package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/notespath/backend/internal/models"
	"github.com/spf13/cobra"
)

var (
	errBranchRequired = errors.New("--branch is required")
	errNotOwner       = errors.New("only the owner can delete this material")
)

func requireExactlyArgs(count int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != count {
			return errors.New(message)
		}
		return nil
	}
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writePlain(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if err := writePlain(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func writeMaterialList(w io.Writer, views []models.MaterialView) error {
	if len(views) == 0 {
		return writePlain(w, "no materials found\n")
	}
	for _, view := range views {
		if err := writePlain(w, "%s\n", formatMaterialLine(view)); err != nil {
			return err
		}
	}
	return nil
}

func formatMaterialLine(view models.MaterialView) string {
	line := fmt.Sprintf("%s [%s] %s", view.ID, view.FileKind, view.Title)
	if labels := joinNonEmpty(" / ", view.Branch, view.Subject); labels != "" {
		line += " - " + labels
	}
	if view.CanDelete {
		line += " (yours)"
	}
	return line
}

func writeMaterialDetail(w io.Writer, view models.MaterialView) error {
	lines := []string{
		fmt.Sprintf("id: %s", view.ID),
		fmt.Sprintf("title: %s", view.Title),
		fmt.Sprintf("file: %s", view.FileURL),
		fmt.Sprintf("kind: %s", view.FileKind),
		fmt.Sprintf("created_at: %s", view.CreatedAt.UTC().Format(time.RFC3339)),
	}

	optional := []struct{ label, value string }{
		{"branch", view.Branch},
		{"subject", view.Subject},
		{"semester", view.Semester},
		{"module", view.Module},
		{"college", view.CollegeDetails},
		{"uploader", view.UploaderName},
	}
	for _, field := range optional {
		if field.value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", field.label, field.value))
		}
	}
	if view.CanDelete {
		lines = append(lines, "can_delete: true")
	}

	return writePlain(w, "%s\n", strings.Join(lines, "\n"))
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
