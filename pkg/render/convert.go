package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/chartstack/pkg/errors"
)

const rsvgTool = "rsvg-convert"

// DefaultPNGScale is the raster scale factor applied when none is given.
// 2.0 produces a 2x resolution image.
const DefaultPNGScale = 2.0

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale
// factor.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgTool); err != nil {
		return nil, &errors.ConversionError{Format: format, Tool: rsvgTool}
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(rsvgTool, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, &errors.ConversionError{Format: format, Tool: rsvgTool, Message: msg}
	}
	return out.Bytes(), nil
}
