package signature

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func canvas(w, h int, fill color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

func codes(err error) []string {
	return gate.Codes(shared.Reasons(err))
}

func TestFromDataURL(t *testing.T) {
	img := canvas(20, 10, color.White)
	img.Set(5, 5, color.Black)

	art, err := FromDataURL(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, ContentTypePNG, art.ContentType)
	assert.Equal(t, 20, art.Width)
	assert.Equal(t, 10, art.Height)
	assert.Len(t, art.Digest, 64)
	assert.NotEmpty(t, art.Bytes)
}

func TestFromDataURL_Rejects(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := FromDataURL("  ")
		require.ErrorIs(t, err, shared.ErrValidationFailed)
		assert.Equal(t, []string{"signature_empty"}, codes(err))
	})
	t.Run("wrong scheme", func(t *testing.T) {
		_, err := FromDataURL("data:image/jpeg;base64,AAAA")
		assert.Equal(t, []string{"signature_format"}, codes(err))
	})
	t.Run("bad base64", func(t *testing.T) {
		_, err := FromDataURL(dataURLPrefix + "%%%")
		assert.Equal(t, []string{"signature_format"}, codes(err))
	})
	t.Run("not a png", func(t *testing.T) {
		_, err := FromDataURL(dataURLPrefix + base64.StdEncoding.EncodeToString([]byte("hello world")))
		assert.Equal(t, []string{"signature_format"}, codes(err))
	})
	t.Run("blank white", func(t *testing.T) {
		_, err := FromDataURL(encodePNG(t, canvas(8, 8, color.White)))
		assert.Equal(t, []string{"signature_empty"}, codes(err))
	})
	t.Run("blank transparent", func(t *testing.T) {
		_, err := FromDataURL(encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 8, 8))))
		assert.Equal(t, []string{"signature_empty"}, codes(err))
	})
}

func TestFromStrokes(t *testing.T) {
	strokes := []Stroke{{{X: 2, Y: 2}, {X: 30, Y: 12}}, {{X: 10, Y: 18}}}

	art, err := FromStrokes(strokes, 40, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, art.Width)

	img, err := png.Decode(bytes.NewReader(art.Bytes))
	require.NoError(t, err)
	assert.False(t, blank(img))

	again, err := FromStrokes(strokes, 40, 20)
	require.NoError(t, err)
	assert.Equal(t, art.Digest, again.Digest)
}

func TestFromStrokes_FitsCanvasWhenUnsized(t *testing.T) {
	art, err := FromStrokes([]Stroke{{{X: 0, Y: 0}, {X: 50, Y: 25}}}, 0, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, art.Width, 51)
	assert.GreaterOrEqual(t, art.Height, 26)
}

func TestFromStrokes_Rejects(t *testing.T) {
	_, err := FromStrokes(nil, 10, 10)
	assert.Equal(t, []string{"signature_empty"}, codes(err))

	_, err = FromStrokes([]Stroke{{}, {}}, 10, 10)
	assert.Equal(t, []string{"signature_empty"}, codes(err))

	_, err = FromStrokes([]Stroke{{{X: 500, Y: 500}}}, 10, 10)
	assert.Equal(t, []string{"signature_empty"}, codes(err))

	_, err = FromStrokes([]Stroke{{{X: 1, Y: 1}}}, MaxCanvas+1, 10)
	assert.Equal(t, []string{"signature_too_large"}, codes(err))
}

func TestFromStrokes_RejectsOutOfRangePoints(t *testing.T) {
	cases := map[string]Stroke{
		"huge x unsized": {{X: 10, Y: 10}, {X: 1e300, Y: 20}},
		"beyond canvas":  {{X: 10, Y: 10}, {X: 1e11, Y: 20}},
		"negative":       {{X: -5, Y: 10}, {X: 10, Y: 10}},
		"nan":            {{X: math.NaN(), Y: 1}},
		"infinite":       {{X: 1, Y: math.Inf(1)}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromStrokes([]Stroke{s}, 0, 0)
			assert.Equal(t, []string{"signature_too_large"}, codes(err))

			_, err = FromStrokes([]Stroke{s}, 200, 100)
			assert.Equal(t, []string{"signature_too_large"}, codes(err))
		})
	}
}

func TestFromStrokes_RejectsTooManyPoints(t *testing.T) {
	s := make(Stroke, MaxPoints+1)
	for i := range s {
		s[i] = Point{X: float64(i % 100), Y: 5}
	}
	_, err := FromStrokes([]Stroke{s}, 100, 10)
	assert.Equal(t, []string{"signature_too_large"}, codes(err))
}

func TestFromStrokes_ClipsLongSegmentsToCanvas(t *testing.T) {
	art, err := FromStrokes([]Stroke{{{X: 10, Y: 10}, {X: MaxCanvas, Y: 10}}}, 200, 100)
	require.NoError(t, err)
	assert.Equal(t, 200, art.Width)

	img, err := png.Decode(bytes.NewReader(art.Bytes))
	require.NoError(t, err)
	_, _, _, a := img.At(199, 10).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = img.At(5, 10).RGBA()
	assert.Zero(t, a)
}

func TestCapture_PrefersDataURL(t *testing.T) {
	img := canvas(4, 4, color.White)
	img.Set(1, 1, color.Black)
	url := encodePNG(t, img)

	art, err := Capture(Input{DataURL: url, Strokes: []Stroke{{{X: 1, Y: 1}}}, Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Equal(t, 4, art.Width)

	assert.True(t, Input{}.Empty())
	assert.False(t, Input{Strokes: []Stroke{{{X: 1, Y: 1}}}}.Empty())
	_, err = Capture(Input{})
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
}
