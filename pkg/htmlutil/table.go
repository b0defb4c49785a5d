package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// the portal renders label/value rows as "Label" | ": value"
const labelSeparator = ": "

func cell(row *goquery.Selection, index int) *goquery.Selection {
	return row.Find("td").Eq(index)
}

// CellText returns the trimmed text of the index-th cell in a table row with every
// occurrence of ": " removed. ok is false when the row has no such cell.
func CellText(row *goquery.Selection, index int) (text string, ok bool) {
	c := cell(row, index)
	if c.Length() == 0 {
		return "", false
	}
	text = strings.TrimSpace(c.Text())
	return strings.ReplaceAll(text, labelSeparator, ""), true
}

// CellHref returns the href of the first link inside the index-th cell of a table row.
func CellHref(row *goquery.Selection, index int) (href string, ok bool) {
	c := cell(row, index)
	if c.Length() == 0 {
		return "", false
	}
	return c.Find("a").First().Attr("href")
}
