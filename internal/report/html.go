package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"store-dashboard/internal/models"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1f2937}
table{border-collapse:collapse;margin:1rem 0}th,td{border:1px solid #d1d5db;padding:.35rem .75rem}
th{background:#f3f4f6}h2{border-bottom:1px solid #e5e7eb;padding-bottom:.25rem}`

// WriteHTML renders the markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, rep models.Report) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(rep)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(Title), pageStyle, body.String())
	return err
}
