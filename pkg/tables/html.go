package tables

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

type htmlFrame struct {
	Header []string
	Rows   [][]string
}

var frameTemplate = template.Must(template.New("frame").Parse(
	`<table border="1" class="dataframe"><thead><tr><th></th>` +
		`{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead><tbody>` +
		`{{range $i, $row := .Rows}}<tr><th>{{$i}}</th>{{range $row}}<td>{{.}}</td>{{end}}</tr>{{end}}` +
		`</tbody></table>`))

// HTML renders df as an HTML table with a leading row-index column
func HTML(df dataframe.DataFrame) (string, error) {
	if df.Err != nil {
		return "", df.Err
	}

	records := df.Records()
	frame := htmlFrame{Header: df.Names()}
	if len(records) > 1 {
		frame.Rows = records[1:]
	}

	var sb strings.Builder
	if err := frameTemplate.Execute(&sb, frame); err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return sb.String(), nil
}

// MultiTable renders each frame as an HTML table and places them side by
// side, one cell each, in a single outer table
func MultiTable(tables ...dataframe.DataFrame) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<table align=top><tr style="background-color:white; align:top">`)

	for i, df := range tables {
		inner, err := HTML(df)
		if err != nil {
			return "", fmt.Errorf("table %d: %w", i, err)
		}
		sb.WriteString("<td>")
		sb.WriteString(inner)
		sb.WriteString("</td>")
	}

	sb.WriteString("</tr></table>")
	return sb.String(), nil
}
