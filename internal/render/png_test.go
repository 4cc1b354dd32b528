package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/launchdash/internal/model"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestPNGPie(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, sitePie(), 400, 300))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNGScatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, siteScatter(), 0, 0))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNGPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	spec := model.ChartSpec{Kind: model.ChartScatter, Title: "x", Message: "x"}
	assert.ErrorIs(t, PNG(&buf, spec, 0, 0), ErrPlaceholder)
	assert.Zero(t, buf.Len())
}

func TestPNGNoVisiblePoints(t *testing.T) {
	var buf bytes.Buffer
	spec := siteScatter()
	spec.XAxis.Min = 5000
	spec.XAxis.Max = 6000
	assert.ErrorIs(t, PNG(&buf, spec, 0, 0), ErrNoPoints)
}
