package ocr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func TestJoinLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single line", in: "Acme Tech", want: "Acme Tech"},
		{name: "multi line", in: "Priya Sharma\nSales Lead\n\nAcme Tech\n", want: "Priya Sharma Sales Lead Acme Tech"},
		{name: "crlf and padding", in: "  +91 98765 43210 \r\n www.acme.in  ", want: "+91 98765 43210 www.acme.in"},
		{name: "blank", in: "\n \n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinLines(tt.in))
		})
	}
}

func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func renderText(t *testing.T, lines ...string) []byte {
	t.Helper()

	small := image.NewRGBA(image.Rect(0, 0, 160, 20+len(lines)*18))
	xdraw.Draw(small, small.Bounds(), &image.Uniform{C: color.White}, image.Point{}, xdraw.Src)
	d := &font.Drawer{Dst: small, Src: image.Black, Face: basicfont.Face7x13}
	for i, line := range lines {
		d.Dot = fixed.P(8, 20+i*18)
		d.DrawString(line)
	}

	// Upscale so the bitmap font is large enough for Tesseract.
	big := image.NewRGBA(image.Rect(0, 0, small.Bounds().Dx()*4, small.Bounds().Dy()*4))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, big))

	return buf.Bytes()
}

func TestTesseractEngine_Recognize(t *testing.T) {
	ensureTesseractAvailable(t)

	engine := NewTesseractEngine("eng")
	res, err := engine.Recognize(context.Background(), renderText(t, "HELLO CARD", "ACME TECH"))
	require.NoError(t, err)

	assert.NotContains(t, res.Text, "\n")
	assert.Contains(t, strings.ToUpper(res.Text), "HELLO")
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}

func TestTesseractEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTesseractEngine("eng").Recognize(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
