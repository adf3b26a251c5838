// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lectern/pkg/types"
)

// exportFile is the YAML shape of an exported history.
type exportFile struct {
	ExportedAt time.Time         `yaml:"exported_at"`
	Total      int               `yaml:"total"`
	Runs       []types.RunRecord `yaml:"runs"`
}

// Export writes the filtered run records to w as YAML.
func (s *Store) Export(ctx context.Context, f Filter, w io.Writer) error {
	records, err := s.Recent(ctx, f)
	if err != nil {
		return err
	}

	out := exportFile{
		ExportedAt: time.Now().UTC(),
		Total:      len(records),
		Runs:       records,
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshaling history export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing history export: %w", err)
	}
	return nil
}

// RenderTable writes run records as a text table, newest first.
func RenderTable(w io.Writer, records []types.RunRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Started", "Stage", "Document", "Course", "Status", "Detail"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(rec.Stage),
			rec.DocPath,
			rec.Course,
			string(rec.Status),
			rec.Detail,
		})
	}
	t.Render()
}
