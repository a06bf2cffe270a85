// Package signature turns a drawn signature into a PNG artifact.
package signature

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/gabriel-vasile/mimetype"
)

const (
	ContentTypePNG = "image/png"

	// MaxBytes bounds a decoded data URL.
	MaxBytes = 1 << 20
	// MaxCanvas bounds either side of a stroke canvas and every stroke
	// coordinate.
	MaxCanvas = 4096
	// MaxPoints bounds the total number of stroke points.
	MaxPoints = 4096

	dataURLPrefix = "data:image/png;base64,"
	penRadius     = 1.5
)

// Point is a pointer position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one pen-down to pen-up path.
type Stroke []Point

// Input is what a signing canvas submits: either a PNG data URL or strokes
// drawn on a Width x Height canvas. DataURL wins when both are present.
type Input struct {
	DataURL string   `json:"data_url,omitempty"`
	Strokes []Stroke `json:"strokes,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
}

// Empty reports whether the input carries nothing to capture.
func (in Input) Empty() bool {
	return strings.TrimSpace(in.DataURL) == "" && inkPoints(in.Strokes) == 0
}

// Artifact is the stored form of a signature.
type Artifact struct {
	Bytes       []byte
	ContentType string
	// Digest is the hex sha256 of Bytes.
	Digest string
	Width  int
	Height int
}

// Capture produces an artifact from in. Blank or malformed captures fail
// with shared.ErrValidationFailed.
func Capture(in Input) (Artifact, error) {
	if strings.TrimSpace(in.DataURL) != "" {
		return FromDataURL(in.DataURL)
	}
	return FromStrokes(in.Strokes, in.Width, in.Height)
}

// FromDataURL decodes a data:image/png;base64 URL.
func FromDataURL(dataURL string) (Artifact, error) {
	dataURL = strings.TrimSpace(dataURL)
	if dataURL == "" {
		return Artifact{}, rejected("signature_empty", "signature is empty")
	}
	if !strings.HasPrefix(strings.ToLower(dataURL[:min(len(dataURL), len(dataURLPrefix))]), dataURLPrefix) {
		return Artifact{}, rejected("signature_format", "signature must be a data:image/png;base64 URL")
	}
	payload := dataURL[len(dataURLPrefix):]
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxBytes {
		return Artifact{}, rejected("signature_too_large", fmt.Sprintf("signature exceeds %d bytes", MaxBytes))
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Artifact{}, rejected("signature_format", "signature is not valid base64")
	}
	if !mimetype.Detect(raw).Is(ContentTypePNG) {
		return Artifact{}, rejected("signature_format", "signature payload is not a PNG image")
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return Artifact{}, rejected("signature_format", "signature PNG cannot be decoded")
	}
	if blank(img) {
		return Artifact{}, rejected("signature_empty", "signature image is blank")
	}
	b := img.Bounds()
	return newArtifact(raw, b.Dx(), b.Dy()), nil
}

// FromStrokes renders strokes as black ink on a transparent canvas.
func FromStrokes(strokes []Stroke, width, height int) (Artifact, error) {
	if inkPoints(strokes) == 0 {
		return Artifact{}, rejected("signature_empty", "signature has no strokes")
	}
	if err := checkStrokes(strokes); err != nil {
		return Artifact{}, err
	}
	if width <= 0 || height <= 0 {
		width, height = fitCanvas(strokes)
	}
	if width > MaxCanvas || height > MaxCanvas {
		return Artifact{}, rejected("signature_too_large", fmt.Sprintf("canvas exceeds %dx%d", MaxCanvas, MaxCanvas))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, s := range strokes {
		if len(s) == 1 {
			dot(img, s[0])
			continue
		}
		for i := 1; i < len(s); i++ {
			line(img, s[i-1], s[i])
		}
	}
	if blank(img) {
		return Artifact{}, rejected("signature_empty", "signature strokes fall outside the canvas")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Artifact{}, fmt.Errorf("encode signature: %w", err)
	}
	return newArtifact(buf.Bytes(), width, height), nil
}

func newArtifact(raw []byte, w, h int) Artifact {
	sum := sha256.Sum256(raw)
	return Artifact{Bytes: raw, ContentType: ContentTypePNG, Digest: hex.EncodeToString(sum[:]), Width: w, Height: h}
}

func rejected(code, message string) error {
	return shared.NewValidationError([]gate.Reason{{Code: code, Field: "signature", Message: message}})
}

func inkPoints(strokes []Stroke) int {
	n := 0
	for _, s := range strokes {
		n += len(s)
	}
	return n
}

func checkStrokes(strokes []Stroke) error {
	if inkPoints(strokes) > MaxPoints {
		return rejected("signature_too_large", fmt.Sprintf("signature exceeds %d points", MaxPoints))
	}
	for _, s := range strokes {
		for _, p := range s {
			if !inRange(p.X) || !inRange(p.Y) {
				return rejected("signature_too_large", fmt.Sprintf("stroke point outside 0..%d", MaxCanvas))
			}
		}
	}
	return nil
}

// inRange is false for NaN and infinities as well.
func inRange(v float64) bool {
	return v >= 0 && v <= MaxCanvas
}

func fitCanvas(strokes []Stroke) (int, int) {
	var maxX, maxY float64
	for _, s := range strokes {
		for _, p := range s {
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	pad := int(math.Ceil(penRadius)) + 1
	return int(math.Ceil(maxX)) + pad, int(math.Ceil(maxY)) + pad
}

var ink = color.NRGBA{A: 0xff}

func dot(img *image.NRGBA, p Point) {
	r := int(math.Ceil(penRadius))
	cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := float64(x)-p.X, float64(y)-p.Y
			if dx*dx+dy*dy <= penRadius*penRadius {
				img.SetNRGBA(x, y, ink)
			}
		}
	}
}

func line(img *image.NRGBA, a, b Point) {
	a, b, ok := clip(img.Bounds(), a, b)
	if !ok {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	if steps == 0 {
		dot(img, a)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		dot(img, Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
	}
}

// clip trims the segment a-b to the canvas grown by the pen radius
// (Liang-Barsky). ok is false when nothing of the segment is visible.
func clip(r image.Rectangle, a, b Point) (Point, Point, bool) {
	minX, minY := float64(r.Min.X)-penRadius, float64(r.Min.Y)-penRadius
	maxX, maxY := float64(r.Max.X)+penRadius, float64(r.Max.Y)+penRadius
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// blank is true when no pixel is visibly darker than near-white.
func blank(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 0x10 {
				continue
			}
			if (int(c.R)+int(c.G)+int(c.B))/3 < 0xe0 {
				return false
			}
		}
	}
	return true
}
