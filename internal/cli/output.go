package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, rows [][]string) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(rows).
		WithWriter(w).
		Render()
}

// printPlan writes a plan as a two-column table or as JSON.
func printPlan(w io.Writer, plan model.Plan, format string) error {
	if format == FormatJSON {
		return writeJSON(w, plan)
	}

	rows := [][]string{
		{"FIELD", "VALUE"},
		{"Title ID", plan.TitleID},
		{"Kind", string(plan.Kind)},
		{"Action", string(plan.Action)},
	}
	optional := []struct{ name, value string }{
		{"Entitlement", plan.EntitlementLabel},
		{"Game folder", plan.GameDir},
		{"Target", plan.TargetPath},
		{"Package version", plan.PackageVersion},
		{"Installed version", plan.InstalledVersion},
	}
	for _, o := range optional {
		if o.value != "" {
			rows = append(rows, []string{o.name, o.value})
		}
	}
	if plan.Abort != nil {
		rows = append(rows, []string{"Abort reason", fmt.Sprintf("%s (%s)", plan.Abort.Message, plan.Abort.Kind)})
	}
	return renderTable(w, rows)
}

// packageInfo is the JSON form of the info command.
type packageInfo struct {
	Path      string            `json:"path"`
	Format    container.Format  `json:"format"`
	Title     string            `json:"title"`
	TitleID   string            `json:"title_id"`
	ContentID string            `json:"content_id,omitempty"`
	Kind      model.PackageKind `json:"kind"`
	Flags     []string          `json:"flags,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

func newPackageInfo(pkg *container.Package) packageInfo {
	info := packageInfo{
		Path:      pkg.Path,
		Format:    pkg.Format,
		Title:     pkg.Title(),
		TitleID:   pkg.TitleID,
		ContentID: pkg.ContentID,
		Kind:      pkg.Metadata().Kind(),
		Flags:     pkg.Flags,
	}
	if pkg.SFO != nil {
		info.Params = make(map[string]string)
		for _, e := range pkg.SFO.Entries() {
			info.Params[e.Key] = paramValue(pkg.SFO, e)
		}
	}
	return info
}

func paramValue(f *sfo.File, e sfo.Entry) string {
	switch e.Format {
	case sfo.FormatInteger:
		v, _ := f.GetInteger(e.Key)
		return fmt.Sprintf("0x%08X", v)
	case sfo.FormatString, sfo.FormatSpecial:
		v, _ := f.GetString(e.Key)
		return v
	default:
		return fmt.Sprintf("%x", e.Data)
	}
}

// printPackageInfo writes container metadata and the param.sfo entries.
func printPackageInfo(w io.Writer, pkg *container.Package, format string) error {
	info := newPackageInfo(pkg)
	if format == FormatJSON {
		return writeJSON(w, info)
	}

	rows := [][]string{
		{"FIELD", "VALUE"},
		{"Path", info.Path},
		{"Format", string(info.Format)},
		{"Title", info.Title},
		{"Title ID", info.TitleID},
		{"Content ID", info.ContentID},
		{"Kind", string(info.Kind)},
		{"Flags", strings.Join(info.Flags, ", ")},
	}
	if err := renderTable(w, rows); err != nil {
		return err
	}
	if pkg.SFO == nil {
		return nil
	}

	_, _ = fmt.Fprintln(w)
	params := [][]string{{"PARAM", "VALUE"}}
	for _, e := range pkg.SFO.Entries() {
		params = append(params, []string{e.Key, info.Params[e.Key]})
	}
	return renderTable(w, params)
}
