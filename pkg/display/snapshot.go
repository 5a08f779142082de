package display

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/taigrr/radiance/pkg/engine"
)

// SnapshotConfig controls a headless run.
type SnapshotConfig struct {
	// BakePasses run synchronously before the first frame.
	BakePasses int
	// Frames rendered; only the last one is saved. At least one is drawn.
	Frames int
	Out    string
}

// RunSnapshot bakes, renders, and writes the last frame of eng to cfg.Out as
// a PNG, then logs a statistics table.
func RunSnapshot(ctx context.Context, eng *engine.Engine, cfg SnapshotConfig) error {
	for i := range cfg.BakePasses {
		if err := eng.Baker().Pass(ctx); err != nil {
			return fmt.Errorf("bake pass %d: %w", i, err)
		}
	}

	for range max(1, cfg.Frames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		eng.Frame()
	}

	if err := eng.Framebuffer().SavePNG(cfg.Out); err != nil {
		return err
	}
	logger.Noticef("wrote %s", cfg.Out)
	logger.Noticef("snapshot statistics\n%s", StatsTable(eng))
	return nil
}

// StatsTable renders the frame, geometry, and bake counters of eng as a text
// table.
func StatsTable(eng *engine.Engine) string {
	fs := eng.Stats()
	bs := eng.Baker().Stats()
	rs := fs.Render

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Count", "Last", "Average"})
	table.Append([]string{"frames", fmt.Sprintf("%d", fs.Frames), fs.Last.String(), fs.Average.String()})
	table.Append([]string{"bake passes", fmt.Sprintf("%d", bs.Passes), bs.Last.String(), bs.Average.String()})
	table.Append([]string{"objects culled", fmt.Sprintf("%d/%d", rs.ObjectsCulled, rs.ObjectsTested), "", ""})
	table.Append([]string{"triangles", fmt.Sprintf("%d", rs.Triangles), "", ""})
	table.Append([]string{"back faces", fmt.Sprintf("%d", rs.BackFaces), "", ""})
	table.Append([]string{"near rejected", fmt.Sprintf("%d", rs.NearRejected), "", ""})
	table.Append([]string{"degenerate", fmt.Sprintf("%d", rs.Degenerate), "", ""})
	table.Append([]string{"drawn", fmt.Sprintf("%d", rs.Drawn), "", ""})
	table.SetFooter([]string{"", "", "pixels", fmt.Sprintf("%d", rs.Pixels)})
	table.Render()

	return buf.String()
}
