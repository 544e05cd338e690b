package charm

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Icon holds the parsed dimensions of icon.svg.
type Icon struct {
	Width   float64
	Height  float64
	ViewBox string
}

// svgRoot matches only the attributes the icon rule needs.
type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
}

func parseIcon(raw []byte) (*Icon, error) {
	var root svgRoot
	if err := xml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parsing icon.svg: %w", err)
	}

	icon := &Icon{ViewBox: root.ViewBox}
	if root.Width != "" {
		w, err := parseSVGLength(root.Width)
		if err != nil {
			return nil, fmt.Errorf("parsing icon.svg width: %w", err)
		}
		icon.Width = w
	}
	if root.Height != "" {
		h, err := parseSVGLength(root.Height)
		if err != nil {
			return nil, fmt.Errorf("parsing icon.svg height: %w", err)
		}
		icon.Height = h
	}
	return icon, nil
}

// Is100x100 reports whether the canvas is exactly 100x100, using explicit
// width/height when present and falling back to the viewBox.
func (i *Icon) Is100x100() bool {
	if i.Width > 0 && i.Height > 0 {
		return i.Width == 100 && i.Height == 100
	}
	parts := strings.Fields(i.ViewBox)
	if len(parts) != 4 {
		return false
	}
	w, werr := strconv.ParseFloat(parts[2], 64)
	h, herr := strconv.ParseFloat(parts[3], 64)
	return werr == nil && herr == nil && w == 100 && h == 100
}

func parseSVGLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
