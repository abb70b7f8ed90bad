package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const pageDataSelector = "script#__NEXT_DATA__"

// extractStatusData finds the embedded page-data script in an HTML document
// and returns the status object nested inside it.
func extractStatusData(r io.Reader) (object, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing html: %v", ErrPageDataMissing, err)
	}

	script := doc.Find(pageDataSelector).First()
	if script.Length() == 0 {
		return nil, ErrPageDataMissing
	}

	decoder := json.NewDecoder(strings.NewReader(script.Text()))
	decoder.UseNumber()

	var page any
	if err := decoder.Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageDataMalformed, err)
	}

	node := page
	for _, key := range statusDataPath {
		m, ok := node.(object)
		if !ok {
			return nil, fmt.Errorf("%w: no object holding %q", ErrStatusDataMissing, key)
		}
		node = m[key]
	}

	lts, ok := node.(object)
	if !ok || len(lts) == 0 {
		return nil, ErrStatusDataMissing
	}
	return lts, nil
}
